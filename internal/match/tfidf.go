package match

import "math"

// TermFrequencies maps each term to count/len for one document.
func TermFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return tf
	}
	for _, token := range tokens {
		tf[token]++
	}
	total := float64(len(tokens))
	for term := range tf {
		tf[term] /= total
	}
	return tf
}

// InverseDocFrequencies computes idf(term) = ln((N+1)/(df+1)) + 1 over the
// given documents, the query document included.
func InverseDocFrequencies(documents [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{}, len(doc))
		for _, token := range doc {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			df[token]++
		}
	}

	n := float64(len(documents))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((n+1)/float64(count+1)) + 1
	}
	return idf
}

// Vector is one document's tf·idf weights. Terms absent from the idf
// table contribute zero.
func Vector(tokens []string, idf map[string]float64) map[string]float64 {
	tf := TermFrequencies(tokens)
	vec := make(map[string]float64, len(tf))
	for term, freq := range tf {
		vec[term] = freq * idf[term]
	}
	return vec
}

// Cosine is dot(A,B)/(|A|·|B|), zero when either vector has zero norm.
func Cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	for term, va := range a {
		if vb, ok := b[term]; ok {
			dot += va * vb
		}
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
