package match

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermFrequencies(t *testing.T) {
	tf := TermFrequencies([]string{"roadmap", "roadmap", "backlog", "sql"})

	assert.InDelta(t, 0.5, tf["roadmap"], 1e-9)
	assert.InDelta(t, 0.25, tf["backlog"], 1e-9)
	assert.InDelta(t, 0.25, tf["sql"], 1e-9)
	assert.Empty(t, TermFrequencies(nil))
}

func TestInverseDocFrequencies_SmoothedFormula(t *testing.T) {
	docs := [][]string{
		{"roadmap", "sql"},
		{"roadmap"},
		{"backlog"},
	}
	idf := InverseDocFrequencies(docs)

	// idf = ln((N+1)/(df+1)) + 1 with N=3.
	assert.InDelta(t, math.Log(4.0/3.0)+1, idf["roadmap"], 1e-9)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf["sql"], 1e-9)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf["backlog"], 1e-9)
}

func TestInverseDocFrequencies_RepeatsCountOncePerDoc(t *testing.T) {
	idf := InverseDocFrequencies([][]string{{"roadmap", "roadmap"}})
	assert.InDelta(t, math.Log(2.0/2.0)+1, idf["roadmap"], 1e-9)
}

func TestVector_UnknownTermsContributeZero(t *testing.T) {
	idf := map[string]float64{"roadmap": 2}
	vec := Vector([]string{"roadmap", "mystery"}, idf)

	assert.InDelta(t, 0.5*2, vec["roadmap"], 1e-9)
	assert.InDelta(t, 0, vec["mystery"], 1e-9)
}

func TestCosine_SelfSimilarityIsOne(t *testing.T) {
	v := map[string]float64{"a": 1, "b": 2, "c": 3}
	assert.InDelta(t, 1, Cosine(v, v), 1e-9)
}

func TestCosine_Symmetry(t *testing.T) {
	a := map[string]float64{"roadmap": 1, "sql": 2}
	b := map[string]float64{"sql": 1, "backlog": 4}
	assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-9)
}

func TestCosine_DisjointIsZero(t *testing.T) {
	a := map[string]float64{"roadmap": 1}
	b := map[string]float64{"backlog": 1}
	assert.Zero(t, Cosine(a, b))
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Zero(t, Cosine(map[string]float64{}, map[string]float64{"a": 1}))
	assert.Zero(t, Cosine(map[string]float64{"a": 1}, map[string]float64{}))
}
