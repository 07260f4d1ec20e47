package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds the global model plus per-agent overrides (§6).
type LLMConfig struct {
	Model        string            `yaml:"model"`
	AgentModels  map[string]string `yaml:"agent_models"`
}

// ModelFor returns the per-agent override if set, else the global model.
func (l LLMConfig) ModelFor(agent string) string {
	if m, ok := l.AgentModels[agent]; ok && m != "" {
		return m
	}
	return l.Model
}

// KenpomConfig toggles the rankings scrape.
type KenpomConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ScrapingConfig names the pluggable data sources (§9: "Pluggable data sources").
type ScrapingConfig struct {
	GamesSource  string       `yaml:"games_source"`
	LinesSources []string     `yaml:"lines_sources"` // primary first, §4.4
	Kenpom       KenpomConfig `yaml:"kenpom"`
}

// BankrollConfig seeds the Bankroll snapshot sequence.
type BankrollConfig struct {
	Initial    float64 `yaml:"initial"`
	MinBalance float64 `yaml:"min_balance"`
}

// BettingConfig governs unit sizing.
type BettingConfig struct {
	KellyFraction float64 `yaml:"kelly_fraction"`
}

// SchedulerConfig drives the --schedule cron loop.
type SchedulerConfig struct {
	RunTime  string `yaml:"run_time"` // "HH:MM"
	Timezone string `yaml:"timezone"` // IANA zone name
}

// AgentSettings is the per-agent `enabled`/`max_picks_per_day`/etc block.
type AgentSettings struct {
	Enabled        bool `yaml:"enabled"`
	MaxPicksPerDay int  `yaml:"max_picks_per_day"`
}

// PipelineConfig is the top-level YAML document (§6: "Configuration (YAML)").
type PipelineConfig struct {
	LLM       LLMConfig                `yaml:"llm"`
	Scraping  ScrapingConfig           `yaml:"scraping"`
	Bankroll  BankrollConfig           `yaml:"bankroll"`
	Betting   BettingConfig            `yaml:"betting"`
	Scheduler SchedulerConfig          `yaml:"scheduler"`
	Debug     bool                     `yaml:"debug"`
	Agents    map[string]AgentSettings `yaml:"agents"`
}

func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	if path == "" {
		return defaultPipelineConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}

	cfg := defaultPipelineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}
	return cfg, nil
}

func defaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		LLM: LLMConfig{Model: "gpt-4o-mini", AgentModels: map[string]string{}},
		Scraping: ScrapingConfig{
			GamesSource:  "espn",
			LinesSources: []string{"draftkings", "fanduel"},
			Kenpom:       KenpomConfig{Enabled: true},
		},
		Bankroll: BankrollConfig{Initial: 10000, MinBalance: 1000},
		Betting:  BettingConfig{KellyFraction: 0.25},
		Scheduler: SchedulerConfig{
			RunTime:  "09:00",
			Timezone: "America/New_York",
		},
		Agents: map[string]AgentSettings{},
	}
}

// AgentSetting returns the settings for an agent, defaulting to enabled
// with no per-day pick cap.
func (p *PipelineConfig) AgentSetting(agent string) AgentSettings {
	if s, ok := p.Agents[agent]; ok {
		return s
	}
	return AgentSettings{Enabled: true}
}

// Location resolves the configured timezone, falling back to UTC.
func (s SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
