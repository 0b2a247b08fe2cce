package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/htmldate/internal/cache"
)

func testContext(extensive bool) SearchContext {
	sc := NewSearchContext()
	sc.Extensive = extensive
	sc.Bounds.Max = time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
	return sc
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
		ok       bool
	}{
		{"too short", "2017", "", false},
		{"too few digits", "March 5th", "", false},
		{"no separator", "abc12345def", "", false},
		{"digit run", "20170901", "20170901", true},
		{"time of day", "10:30:00", "", false},
		{"time of day with text", "10:30 am today", "", false},
		{"bare year", "Copyright 2019 ACME", "", false},
		{"trailing text stripped", "  2017-09-01 by Jane  ", "2017-09-01", true},
		{"truncated", "2017-09-01 " + "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx1", "2017-09-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Prepare(tt.fragment)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTryDateFastPath(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		expected time.Time
	}{
		{"compact", "20170901", time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"ISO date", "2017-09-01", time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"ISO datetime", "2017-09-01T10:12:44", time.Date(2017, 9, 1, 10, 12, 44, 0, time.UTC)},
		{"ISO datetime with zone", "2017-09-01T23:12:44+02:00", time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"slashed YMD", "2017/9/1", time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"dotted DMY", "Stand: 01.09.2017", time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"two-digit year 1990s", "12.3.99", time.Date(1999, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"two-digit year 2000s", "12.03.05", time.Date(2005, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"american", "Posted March 5, 2017", time.Date(2017, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"american abbreviated", "Sep. 21st, 2016", time.Date(2016, 9, 21, 0, 0, 0, 0, time.UTC)},
		{"british", "5 March 2017", time.Date(2017, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"british ordinal", "21st of September, 2016", time.Date(2016, 9, 21, 0, 0, 0, 0, time.UTC)},
		{"german", "5. März 2017", time.Date(2017, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"german abbreviated", "3. Okt. 2018", time.Date(2018, 10, 3, 0, 0, 0, 0, time.UTC)},
	}

	sc := testContext(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := TryDate(tt.fragment, sc)
			require.True(t, ok, "expected a date in %q", tt.fragment)
			assert.Equal(t, tt.expected.Format(DefaultLayout), c.Format(DefaultLayout))
			assert.Equal(t, PrecisionDay, c.Precision)
		})
	}
}

func TestTryDateRejects(t *testing.T) {
	sc := testContext(true)
	for _, fragment := range []string{
		"2017-02-30",
		"1990-05-01",
		"2099-05-01",
		"31.13.2017",
		"not a date at all",
		"12:45:00",
	} {
		_, ok := TryDate(fragment, sc)
		assert.False(t, ok, fragment)
	}
}

func TestTryDateSlowPath(t *testing.T) {
	_, ok := TryDate("1332151919", testContext(false))
	assert.False(t, ok, "epoch values need the external parser")

	c, ok := TryDate("1332151919", testContext(true))
	require.True(t, ok)
	assert.Equal(t, "2012-03-19", c.Format(DefaultLayout))
}

func TestTryDateMemoizationDoesNotChangeResults(t *testing.T) {
	fragments := []string{"2017-09-01", "5 March 2017", "1332151919", "nothing here 12"}

	plain := testContext(true)
	memoized := testContext(true)
	memoized.Memo = cache.NewMemo(16)

	for pass := 0; pass < 2; pass++ {
		for _, f := range fragments {
			a, okA := TryDate(f, plain)
			b, okB := TryDate(f, memoized)
			assert.Equal(t, okA, okB, f)
			assert.Equal(t, a, b, f)
		}
	}
	assert.Greater(t, memoized.Memo.Len(), 0)
}

func TestTryDateBoundsAfterMemo(t *testing.T) {
	memo := cache.NewMemo(16)
	wide := testContext(false)
	wide.Memo = memo
	narrow := wide
	narrow.Bounds.Min = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	_, ok := TryDate("2017-09-01", wide)
	assert.True(t, ok)
	_, ok = TryDate("2017-09-01", narrow)
	assert.False(t, ok, "memoized parse must still be checked against the bounds")
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, "1999", ExpandYear("99"))
	assert.Equal(t, "1990", ExpandYear("90"))
	assert.Equal(t, "2005", ExpandYear("05"))
	assert.Equal(t, "2089", ExpandYear("89"))
	assert.Equal(t, "2017", ExpandYear("2017"))
}

func TestMonthNumber(t *testing.T) {
	for name, want := range map[string]int{
		"January": 1, "jän": 1, "Feber": 2, "März": 3, "Mai": 5, "Sept.": 9, "Okt": 10, "Dezember": 12,
	} {
		got, ok := MonthNumber(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := MonthNumber("Brumaire")
	assert.False(t, ok)
}
