package httpcache

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/tpham/dailycard/internal/domain"
)

// BookDateKey is the cache key for the per-(book,date) odds cache (§4.2).
func BookDateKey(book string, date time.Time) string {
	return book + "|" + date.Format("2006-01-02")
}

// TeamDateKey is the cache key for the per-(team,date) Four Factors cache.
func TeamDateKey(canonicalTeam string, date time.Time) string {
	return canonicalTeam + "|" + date.Format("2006-01-02")
}

// GameSetKey is the md5-of-sorted-game-ids-plus-date key used by the
// Research and Model caches (§4.2).
func GameSetKey(ids []domain.GameID, date time.Time) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	sort.Strings(strs)
	h := md5.Sum([]byte(strings.Join(strs, ",") + "|" + date.Format("2006-01-02")))
	return hex.EncodeToString(h[:])
}
