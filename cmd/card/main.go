// Command card runs the daily betting-card pipeline: scrape today's games
// and lines, research and model each matchup, pick and approve a card, and
// (the following day) audit how it performed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tpham/dailycard/internal/agents"
	"github.com/tpham/dailycard/internal/config"
	"github.com/tpham/dailycard/internal/httpcache"
	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/odds"
	"github.com/tpham/dailycard/internal/pipeline"
	"github.com/tpham/dailycard/internal/rankings"
	"github.com/tpham/dailycard/internal/reporting"
	"github.com/tpham/dailycard/internal/schedule"
	"github.com/tpham/dailycard/internal/storage"
	"github.com/tpham/dailycard/internal/telemetry"
	"github.com/tpham/dailycard/internal/websearch"
)

func main() {
	dateFlag := flag.String("date", "", "target date, YYYY-MM-DD (default: today)")
	testGames := flag.Int("test", 0, "limit the run to the first N games (0 = no limit)")
	forceRefresh := flag.Bool("force-refresh", false, "bypass all caches for this run")
	debug := flag.Bool("debug", false, "enable debug logging")
	gameID := flag.String("game-id", "", "run the pipeline for a single game id only")
	schedule_ := flag.Bool("schedule", false, "run continuously, firing once a day per the configured schedule")
	flag.Parse()

	cfg := config.Load()
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		telemetry.Errorf("configuration error: %v", err)
		os.Exit(1)
	}

	pipelineCfg, err := config.LoadPipelineConfig(cfg.PipelineConfigPath)
	if err != nil {
		telemetry.Warnf("could not load pipeline config (%v), using defaults", err)
		pipelineCfg, _ = config.LoadPipelineConfig("")
	}

	coord, db, cache, err := buildCoordinator(cfg, pipelineCfg)
	if err != nil {
		telemetry.Errorf("startup: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if *forceRefresh {
		cache.InvalidateAll()
		telemetry.Infof("--force-refresh set, all caches cleared for this run")
	}

	runOpts := pipeline.RunOptions{
		MaxGames: *testGames,
		GameID:   *gameID,
	}

	if *schedule_ {
		runScheduled(coord, pipelineCfg, runOpts)
		return
	}

	target := time.Now()
	if *dateFlag != "" {
		target, err = time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			telemetry.Errorf("invalid --date %q: %v", *dateFlag, err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	if err := coord.RunDailyWithOptions(ctx, target, runOpts); err != nil {
		telemetry.Errorf("pipeline run failed: %v", err)
		os.Exit(1)
	}
}

func runScheduled(coord *pipeline.Coordinator, pipelineCfg *config.PipelineConfig, opts pipeline.RunOptions) {
	loc := pipelineCfg.Scheduler.Location()
	c := cron.New(cron.WithLocation(loc))

	spec := cronSpecFromRunTime(pipelineCfg.Scheduler.RunTime)
	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		if err := coord.RunDailyWithOptions(ctx, time.Now().In(loc), opts); err != nil {
			telemetry.Errorf("scheduled run failed: %v", err)
		}
	})
	if err != nil {
		telemetry.Errorf("invalid schedule %q: %v", pipelineCfg.Scheduler.RunTime, err)
		os.Exit(1)
	}

	telemetry.Banner(true, "dailycard: scheduled to run daily at %s %s", pipelineCfg.Scheduler.RunTime, pipelineCfg.Scheduler.Timezone)
	c.Run() // blocks forever, firing jobs on its own goroutines
}

func cronSpecFromRunTime(hhmm string) string {
	var hour, minute int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hour, &minute); err != nil {
		hour, minute = 9, 0
	}
	return fmt.Sprintf("%d %d * * *", minute, hour)
}

func buildCoordinator(cfg *config.Config, pipelineCfg *config.PipelineConfig) (*pipeline.Coordinator, *storage.DB, *httpcache.Cache, error) {
	httpClient := httpcache.NewClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)

	cache, err := httpcache.Open("data/cache/httpcache.json")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open http cache: %w", err)
	}

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	scheduleSrc := schedule.NewHTTPSource("https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball", httpClient)
	oddsSrc := odds.NewHTTPSource("https://api.the-odds-api.com/v4/sports/basketball_ncaab", cfg.OddsAPIKey, httpClient, cache, pipelineCfg.Scraping.LinesSources)

	var rankingsSrc rankings.Source
	if pipelineCfg.Scraping.Kenpom.Enabled {
		rankingsSrc = rankings.NewHTTPSource(
			"https://kenpom.com", "https://kenpom.com/handlers/login.php",
			cfg.RankingsUsername, cfg.RankingsPassword, httpClient, cache,
		)
	}

	// Each agent gets its own provider instance bound to its own token
	// counter (telemetry.Metrics.<Agent>Tokens), so TokenUsageSummary can
	// attribute spend per role instead of lumping every call together.
	providerFor := func(model string, usage *telemetry.TokenUsage) llm.Provider {
		openaiProvider := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, usage)
		var geminiProvider llm.Provider
		if cfg.GeminiAPIKey != "" {
			if gp, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, usage); err != nil {
				telemetry.Warnf("gemini provider unavailable: %v", err)
			} else {
				geminiProvider = gp
			}
		}
		return llm.Select(model, openaiProvider, geminiProvider)
	}

	searcher := websearch.NewHTTPSearcher("http://localhost:8888", httpClient)
	tools, handlers := agents.ResearchTools(searcher, httpClient)

	researcherModel := pipelineCfg.LLM.ModelFor("research")
	modelModel := pipelineCfg.LLM.ModelFor("model")
	pickerModel := pipelineCfg.LLM.ModelFor("picker")
	presidentModel := pipelineCfg.LLM.ModelFor("president")
	auditorModel := pipelineCfg.LLM.ModelFor("auditor")

	coord := &pipeline.Coordinator{
		Cfg:      pipelineCfg,
		Schedule: scheduleSrc,
		Odds:     oddsSrc,
		Rankings: rankingsSrc,
		DB:       db,
		Reports:  reporting.NewWriter("data"),
		Bus:      reporting.NewBus(),

		Researcher: &agents.Researcher{
			Provider: providerFor(researcherModel, &telemetry.Metrics.ResearcherTokens), Model: researcherModel,
			Tools: tools, Handlers: handlers,
		},
		Modeler: &agents.Modeler{
			Provider: providerFor(modelModel, &telemetry.Metrics.ModelerTokens), Model: modelModel,
		},
		Picker: &agents.Picker{
			Provider: providerFor(pickerModel, &telemetry.Metrics.PickerTokens), Model: pickerModel,
		},
		President: &agents.President{
			Provider: providerFor(presidentModel, &telemetry.Metrics.PresidentTokens), Model: presidentModel,
			KellyFraction: pipelineCfg.Betting.KellyFraction,
		},
		Auditor: &agents.Auditor{
			Provider: providerFor(auditorModel, &telemetry.Metrics.AuditorTokens), Model: auditorModel,
		},
	}
	return coord, db, cache, nil
}
