// Package schedule implements the Schedule Source (§4.3): the day's games,
// with team names, venue, start time, and status. Parses final scores when
// a game has already concluded, for the Auditor's consumption the next day.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Source is the capability the coordinator consumes (§9: "Pluggable data
// sources" — no runtime monkey-patching, just an interface).
type Source interface {
	ScrapeGames(ctx context.Context, targetDate time.Time) ([]domain.Game, error)
}

// HTTPSource fetches the day's games from a JSON schedule vendor (ESPN-shaped
// scoreboard feed), grounded on the teacher's outbound HTTP adapter pattern
// (internal/adapters/outbound/goalserve/client.go: per-session *http.Client,
// API-keyed URL builder, structured telemetry on every call).
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, httpClient *http.Client) *HTTPSource {
	return &HTTPSource{baseURL: baseURL, httpClient: httpClient}
}

type scoreboardResponse struct {
	Events []struct {
		ID     string `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Type struct {
				State string `json:"state"` // "pre" | "in" | "post"
			} `json:"type"`
		} `json:"status"`
		Competitions []struct {
			Venue struct {
				FullName string `json:"fullName"`
			} `json:"venue"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Team     struct {
					DisplayName string `json:"displayName"`
				} `json:"team"`
				Score string `json:"score"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

// ScrapeGames fetches and parses the day's scoreboard. On failure the
// pipeline aborts the run outright — there is no mock fallback in
// production (§4.3).
func (s *HTTPSource) ScrapeGames(ctx context.Context, targetDate time.Time) ([]domain.Game, error) {
	start, end, err := DateWindowUTC(targetDate)
	if err != nil {
		return nil, fmt.Errorf("schedule: resolve date window: %w", err)
	}

	url := fmt.Sprintf("%s/scoreboard?dates=%s", s.baseURL, targetDate.Format("20060102"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("schedule: build request: %w", err)
	}

	t0 := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule: fetch: %w", err)
	}
	defer resp.Body.Close()
	telemetry.Metrics.HTTPLatency.Record(time.Since(t0))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule: vendor returned status %d", resp.StatusCode)
	}

	var parsed scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("schedule: decode response: %w", err)
	}

	var games []domain.Game
	for _, ev := range parsed.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]

		var home, away string
		var homeScore, awayScore int
		for _, c := range comp.Competitors {
			var score int
			fmt.Sscanf(c.Score, "%d", &score)
			if c.HomeAway == "home" {
				home = c.Team.DisplayName
				homeScore = score
			} else {
				away = c.Team.DisplayName
				awayScore = score
			}
		}
		if home == "" || away == "" {
			continue
		}

		startTime, err := time.Parse(time.RFC3339, ev.Date)
		if err != nil {
			startTime = targetDate
		}
		if !InWindow(startTime.UTC(), start, end) {
			continue
		}

		status := domain.StatusScheduled
		var result *domain.Score
		switch ev.Status.Type.State {
		case "in":
			status = domain.StatusLive
		case "post":
			status = domain.StatusFinal
			result = &domain.Score{HomeScore: homeScore, AwayScore: awayScore}
		}

		games = append(games, domain.Game{
			ID:        domain.NewGameID(home, away, targetDate),
			TeamHome:  home,
			TeamAway:  away,
			Date:      targetDate,
			Venue:     comp.Venue.FullName,
			StartTime: &startTime,
			Status:    status,
			Result:    result,
		})
	}

	telemetry.Infof("schedule: found %d games for %s", len(games), targetDate.Format("2006-01-02"))
	return games, nil
}
