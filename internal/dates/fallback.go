package dates

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/mrjoshuak/htmldate/internal/cache"
)

// memoMiss marks a fragment the external parser could not read.
type memoMiss struct{}

// slowCandidate delegates to the free-text parser, preferring day-before-month
// on ambiguous input. Month-year strings resolve to the first of the month.
func slowCandidate(s string, memo *cache.Memo) (time.Time, bool) {
	key := cache.Key("slow", s)
	if v, ok := memo.Get(key); ok {
		t, found := v.(time.Time)
		return t, found
	}
	t, ok := externalParse(s)
	if ok {
		memo.Add(key, t)
	} else {
		memo.Add(key, memoMiss{})
	}
	return t, ok
}

// externalParse shields the cascade from parser failures, including panics on
// pathological input, which count as "no candidate".
func externalParse(s string) (t time.Time, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	return WallClock(parsed), true
}
