package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/crawl"
	"jobmatch-engine/internal/detect"
	"jobmatch-engine/internal/httpx"
	"jobmatch-engine/internal/match"
	"jobmatch-engine/internal/resume"
	"jobmatch-engine/internal/robots"
	"jobmatch-engine/internal/scrape"
	"jobmatch-engine/internal/store"
)

type cli struct {
	Config  string `help:"Path to config file." default:"config/config.yml"`
	DataDir string `help:"Data directory for the database." env:"JOBMATCH_DATA_DIR" default:"."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Crawl        crawlCmd  `cmd:"" help:"Harvest postings for every company in the worklist."`
	IngestResume ingestCmd `cmd:"" name:"ingest-resume" help:"Extract and store a resume's text."`
	Match        matchCmd  `cmd:"" help:"Rank stored postings against a stored resume."`
}

type app struct {
	cfg     config.Config
	db      *store.DB
	log     zerolog.Logger
	dataDir string
}

type crawlCmd struct {
	Worklist string `arg:"" help:"Worklist file: Company,URL[,Notes] per line."`
	Limit    int    `help:"Maximum companies to process." default:"50"`
	All      bool   `help:"Re-store postings already seen (disables fresh-only)."`
	JSON     bool   `help:"Emit summaries as JSON."`
}

func (c *crawlCmd) Run(a *app) error {
	lock := flock.New(filepath.Join(a.dataDir, "crawl.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("another crawl is already running")
	}
	defer lock.Unlock()

	limiter := httpx.NewHostLimiter(a.cfg.Crawl.RequestsPerSecond, a.cfg.Crawl.Burst)
	crawler := httpx.New(httpx.Options{
		UserAgent:   a.cfg.Crawl.UserAgent,
		Timeout:     time.Duration(a.cfg.Crawl.TimeoutSeconds) * time.Second,
		MaxAttempts: a.cfg.Crawl.MaxAttempts,
		Limiter:     limiter,
		Logger:      a.log,
	})
	robotsClient := httpx.New(httpx.Options{
		UserAgent:   a.cfg.Crawl.UserAgent,
		Timeout:     time.Duration(a.cfg.Crawl.RobotsTimeoutSeconds) * time.Second,
		MaxAttempts: a.cfg.Crawl.RobotsMaxAttempts,
		Limiter:     limiter,
		Logger:      a.log,
	})

	filter, err := scrape.NewTitleFilter(a.cfg.Crawl.TitleIncludeRegex)
	if err != nil {
		return fmt.Errorf("title filter: %w", err)
	}

	gate := robots.NewGate(robotsClient, a.cfg.Crawl.UserAgent, a.cfg.Crawl.IgnoreRobots, a.log)
	registry := scrape.NewRegistry(scrape.Deps{
		Client:   crawler,
		Filter:   filter,
		MaxPages: a.cfg.Crawl.MaxPagesPerSite,
		Log:      a.log,
	})
	postings := store.NewPostings(a.db.Pool)

	orch := crawl.NewOrchestrator(crawler, gate, registry, postings, detect.Detect, a.log)
	summaries, err := orch.Run(context.Background(), c.Worklist, c.Limit, !c.All)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	for _, s := range summaries {
		fmt.Printf("%-24s %-28s scanned=%-3d fetched=%-3d stored=%-3d skipped=%-3d %s\n",
			s.Company, s.Domain, s.Scanned, s.Fetched, s.Stored, s.Skipped, s.Notes)
	}
	return nil
}

type ingestCmd struct {
	Path string `arg:"" help:"Resume file (plain text)."`
}

func (c *ingestCmd) Run(a *app) error {
	svc := resume.NewService(store.NewResumes(a.db.Pool), nil)
	id, err := svc.IngestFile(context.Background(), c.Path)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

type matchCmd struct {
	ResumeID string `arg:"" help:"Id returned by ingest-resume."`
	Top      int    `help:"Number of results." default:"10"`
}

func (c *matchCmd) Run(a *app) error {
	scorer := match.NewScorer(
		store.NewPostings(a.db.Pool),
		store.NewResumes(a.db.Pool),
		a.cfg.Matching.PreferredLocations,
	)
	results, err := scorer.ScoreTop(context.Background(), c.ResumeID, c.Top)
	if err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("%2d. [%5.1f] %s - %s (%s)\n", i+1, r.Score, r.Posting.Title, r.Posting.Company, r.Posting.URL)
		for _, bullet := range match.Explain(r) {
			fmt.Printf("      - %s\n", bullet)
		}
	}
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("jobmatch-engine"),
		kong.Description("Career-site harvesting and resume-match ranking engine."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	level := zerolog.InfoLevel
	if c.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(c.Config)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("data dir")
	}

	db, err := store.Open(filepath.Join(c.DataDir, "jobmatch.db"))
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}

	kctx.FatalIfErrorf(kctx.Run(&app{cfg: cfg, db: db, log: logger, dataDir: c.DataDir}))
}
