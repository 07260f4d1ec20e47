// Package rankings implements the authenticated Rankings Source (§4.5):
// log in once per process, scrape the season rankings table, cache the
// full table keyed by target date, and serve per-team lookups without
// ever fuzzy-matching at this layer (a near match with the wrong rank is
// worse than no data).
package rankings

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/httpcache"
	"github.com/tpham/dailycard/internal/names"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Source is the capability the coordinator consumes (§9).
type Source interface {
	GetTeamStats(ctx context.Context, team string, targetDate time.Time) (*domain.AdvancedSide, error)
}

// HTTPSource logs in once (lazily, on first use) and re-scrapes the table
// whenever the cached date no longer matches the requested date.
type HTTPSource struct {
	baseURL    string
	loginURL   string
	username   string
	password   string
	httpClient *http.Client
	cache      *httpcache.Cache

	authenticated bool
	cacheDate     string
	table         map[string]domain.AdvancedSide // keyed by canonical team name
}

func NewHTTPSource(baseURL, loginURL, username, password string, httpClient *http.Client, cache *httpcache.Cache) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL, loginURL: loginURL, username: username, password: password,
		httpClient: httpClient, cache: cache,
	}
}

func (s *HTTPSource) login(ctx context.Context) error {
	if s.authenticated {
		return nil
	}
	form := url.Values{"email": {s.username}, "password": {s.password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("rankings: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rankings: login request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rankings: login returned status %d", resp.StatusCode)
	}
	s.authenticated = true
	telemetry.Infof("rankings: authenticated")
	return nil
}

// refresh re-scrapes the table if the cached date doesn't match targetDate
// and the source is (or can become) authenticated (§4.5).
func (s *HTTPSource) refresh(ctx context.Context, targetDate time.Time) error {
	dateKey := targetDate.Format("2006-01-02")

	var cached map[string]domain.AdvancedSide
	if s.cache.Get("table", targetDate, httpcache.PolicyDateGated, &cached) {
		s.table = cached
		s.cacheDate = dateKey
		return nil
	}

	if s.cacheDate == dateKey && s.table != nil {
		return nil
	}

	if err := s.login(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return fmt.Errorf("rankings: build scrape request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rankings: scrape request: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("rankings: parse html: %w", err)
	}

	table, err := ParseTable(doc)
	if err != nil {
		return fmt.Errorf("rankings: parse table: %w", err)
	}

	s.table = table
	s.cacheDate = dateKey
	_ = s.cache.Set("table", targetDate, table)
	telemetry.Infof("rankings: scraped %d teams for %s", len(table), dateKey)
	return nil
}

// GetTeamStats looks the team up by canonical name, then normalized name,
// then each variation, in that order (§4.5). No fuzzy/LLM matching here —
// on miss, returns nil and the downstream Model must widen its uncertainty.
func (s *HTTPSource) GetTeamStats(ctx context.Context, team string, targetDate time.Time) (*domain.AdvancedSide, error) {
	if err := s.refresh(ctx, targetDate); err != nil {
		return nil, err
	}

	keys := append([]string{names.Canonical(team), names.Normalize(team, false)}, names.Variations(team)...)
	for _, key := range keys {
		if side, ok := s.table[key]; ok {
			return &side, nil
		}
	}
	return nil, nil
}
