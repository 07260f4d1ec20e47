package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tpham/dailycard/internal/domain"
	"github.com/tpham/dailycard/internal/httpcache"
	"github.com/tpham/dailycard/internal/schedule"
	"github.com/tpham/dailycard/internal/telemetry"
)

// Source is the capability the coordinator consumes for markets (§9).
type Source interface {
	ScrapeLines(ctx context.Context, games []domain.Game) ([]domain.BettingLine, error)
}

// HTTPSource implements the primary/fallback book discipline of §4.4. Books
// are tried in the order given (primary first, per the
// scraping.lines_sources[] config key, §6).
type HTTPSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *httpcache.Cache
	books      []string
	limiter    *rate.Limiter
}

func NewHTTPSource(baseURL, apiKey string, httpClient *http.Client, cache *httpcache.Cache, books []string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL, apiKey: apiKey, httpClient: httpClient, cache: cache, books: books,
		limiter: httpcache.PolitenessLimiter(150 * time.Millisecond),
	}
}

type vendorEventPayload struct {
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	CommenceTime string `json:"commence_time"` // RFC3339, UTC
	Bookmakers   []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string `json:"key"` // "spreads" | "totals" | "h2h"
			Outcomes []struct {
				Name  string  `json:"name"`
				Price int     `json:"price"`
				Point float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// ScrapeLines selects one BettingLine per (game_id, bet_type) by trying
// books primary-then-fallback. Each book is fetched once for the whole
// target date (batched, not per game, §4.4).
func (s *HTTPSource) ScrapeLines(ctx context.Context, games []domain.Game) ([]domain.BettingLine, error) {
	if len(games) == 0 {
		return nil, nil
	}
	targetDate := games[0].Date

	// candidates[gameID][betType] -> first-seen line from the best-ranked book so far.
	candidates := make(map[domain.GameID]map[domain.BetType]domain.BettingLine)

	for _, book := range s.books {
		events, err := s.fetchBook(ctx, book, targetDate)
		if err != nil {
			telemetry.Warnf("odds: book %s returned no events for %s: %v", book, targetDate.Format("2006-01-02"), err)
			continue // §7: "Odds vendor returns 0 events ... not an error"
		}

		for _, game := range games {
			if allBetTypesFilled(candidates[game.ID]) {
				continue // primary already covered this game fully
			}
			ev, ok := matchEvent(events, game)
			if !ok {
				continue
			}
			lines := parseEventMarkets(ev, game, book)
			if candidates[game.ID] == nil {
				candidates[game.ID] = make(map[domain.BetType]domain.BettingLine)
			}
			for _, l := range lines {
				if _, have := candidates[game.ID][l.BetType]; !have {
					candidates[game.ID][l.BetType] = l
				}
			}
		}

		if err := httpcache.Politeness(ctx, s.limiter); err != nil {
			return nil, fmt.Errorf("odds: politeness wait: %w", err)
		}
	}

	var out []domain.BettingLine
	for _, byType := range candidates {
		for _, l := range byType {
			out = append(out, l)
		}
	}
	return out, nil
}

func allBetTypesFilled(m map[domain.BetType]domain.BettingLine) bool {
	if m == nil {
		return false
	}
	_, hasS := m[domain.BetSpread]
	_, hasT := m[domain.BetTotal]
	_, hasM := m[domain.BetMoneyline]
	return hasS && hasT && hasM
}

func (s *HTTPSource) fetchBook(ctx context.Context, book string, date time.Time) ([]vendorEventPayload, error) {
	key := httpcache.BookDateKey(book, date)
	var cached []vendorEventPayload
	if s.cache.Get(key, date, httpcache.PolicyOddsHourly, &cached) {
		return cached, nil
	}

	start, end, err := schedule.DateWindowUTC(date)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/odds?apiKey=%s&bookmakers=%s&commenceTimeFrom=%s&commenceTimeTo=%s",
		s.baseURL, s.apiKey, book, start.Format(time.RFC3339), end.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	telemetry.Metrics.HTTPLatency.Record(time.Since(t0))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var events []vendorEventPayload
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("0 events")
	}

	// Cache writes occur even on a thin response, so a later retry of a
	// different book doesn't re-punish this one (§4.2).
	_ = s.cache.Set(key, date, events)
	return events, nil
}

func matchEvent(events []vendorEventPayload, game domain.Game) (vendorEventPayload, bool) {
	for _, ev := range events {
		if MatchesGame(VendorEvent{HomeTeam: ev.HomeTeam, AwayTeam: ev.AwayTeam}, game.TeamHome, game.TeamAway) {
			return ev, true
		}
	}
	return vendorEventPayload{}, false
}

func parseEventMarkets(ev vendorEventPayload, game domain.Game, book string) []domain.BettingLine {
	var out []domain.BettingLine
	if len(ev.Bookmakers) == 0 {
		return out
	}
	bm := ev.Bookmakers[0]
	ts := time.Now()

	for _, mkt := range bm.Markets {
		switch mkt.Key {
		case "spreads":
			if len(mkt.Outcomes) != 2 {
				continue
			}
			raw := [2]RawOutcome{
				{TeamText: mkt.Outcomes[0].Name, Line: mkt.Outcomes[0].Point, Odds: domain.AmericanOdds(mkt.Outcomes[0].Price)},
				{TeamText: mkt.Outcomes[1].Name, Line: mkt.Outcomes[1].Point, Odds: domain.AmericanOdds(mkt.Outcomes[1].Price)},
			}
			sels := RecoverSpread(raw, game.TeamHome, game.TeamAway)
			for i, o := range mkt.Outcomes {
				if sels[i].IsEmpty() {
					continue
				}
				out = append(out, domain.BettingLine{
					GameID: game.ID, Book: book, BetType: domain.BetSpread,
					Line: o.Point, Odds: domain.AmericanOdds(o.Price),
					Selection: sels[i], Timestamp: ts,
				})
			}
		case "h2h":
			for _, o := range mkt.Outcomes {
				sel := RecoverMoneyline(RawOutcome{TeamText: o.Name, Odds: domain.AmericanOdds(o.Price)}, game.TeamHome, game.TeamAway)
				if sel.IsEmpty() {
					continue
				}
				out = append(out, domain.BettingLine{
					GameID: game.ID, Book: book, BetType: domain.BetMoneyline,
					Odds: domain.AmericanOdds(o.Price), Selection: sel, Timestamp: ts,
				})
			}
		case "totals":
			for _, o := range mkt.Outcomes {
				label := ""
				switch o.Name {
				case "Over":
					label = "over"
				case "Under":
					label = "under"
				}
				sel := RecoverTotal(label)
				if sel.IsEmpty() {
					continue
				}
				out = append(out, domain.BettingLine{
					GameID: game.ID, Book: book, BetType: domain.BetTotal,
					Line: o.Point, Odds: domain.AmericanOdds(o.Price),
					Selection: sel, Timestamp: ts,
				})
			}
		}
	}
	return out
}
