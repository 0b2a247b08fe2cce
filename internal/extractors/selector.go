package extractors

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

// Frequencies counts how often each candidate string occurs in a document.
type Frequencies map[string]int

const (
	topCandidates = 10
	// a rarer candidate with another year still wins above this share
	secondPlaceRatio = 0.5
)

type tally struct {
	item  string
	count int
	key   string
}

// SelectCandidate picks one candidate from freq and returns the submatches
// of catch on it, or nil when the table is empty, too noisy or implausible.
//
// The most frequent candidates are ordered chronologically, newest first
// unless the earliest date is sought, and the first two are compared.
func SelectCandidate(freq Frequencies, catch, year *regexp.Regexp, sc dates.SearchContext) []string {
	if len(freq) == 0 || len(freq) > MaxPossibleCandidates {
		return nil
	}
	if len(freq) == 1 {
		for item := range freq {
			return catch.FindStringSubmatch(item)
		}
	}

	tallies := make([]tally, 0, len(freq))
	for item, count := range freq {
		tallies = append(tallies, tally{item: item, count: count, key: chronoKey(item, catch)})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].count != tallies[j].count {
			return tallies[i].count > tallies[j].count
		}
		return tallies[i].item < tallies[j].item
	})
	if len(tallies) > topCandidates {
		tallies = tallies[:topCandidates]
	}
	earlier := func(a, b tally) bool {
		if a.key != b.key {
			return a.key < b.key
		}
		return a.item < b.item
	}
	sort.Slice(tallies, func(i, j int) bool {
		if sc.Original {
			return earlier(tallies[i], tallies[j])
		}
		return earlier(tallies[j], tallies[i])
	})

	first, second := tallies[0], tallies[1]
	firstYear, firstOK := candidateYear(first.item, year, sc)
	secondYear, secondOK := candidateYear(second.item, year, sc)

	switch {
	case !firstOK && !secondOK:
		return nil
	case !firstOK:
		return catch.FindStringSubmatch(second.item)
	case !secondOK:
		return catch.FindStringSubmatch(first.item)
	case first.count == second.count:
		return catch.FindStringSubmatch(first.item)
	case firstYear != secondYear && float64(second.count)/float64(first.count) > secondPlaceRatio:
		return catch.FindStringSubmatch(second.item)
	default:
		return catch.FindStringSubmatch(first.item)
	}
}

// chronoKey renders the components captured by catch zero-padded and most
// significant first, so that keys sort chronologically whatever the
// separators of the raw match were.
func chronoKey(item string, catch *regexp.Regexp) string {
	m := catch.FindStringSubmatch(item)
	if len(m) < 2 {
		return item
	}
	parts := make([]string, 0, len(m)-1)
	for i, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if err != nil {
			return item
		}
		if i == 0 {
			parts = append(parts, fmt.Sprintf("%04d", n))
		} else {
			parts = append(parts, fmt.Sprintf("%02d", n))
		}
	}
	return strings.Join(parts, "-")
}

func candidateYear(item string, year *regexp.Regexp, sc dates.SearchContext) (int, bool) {
	m := year.FindStringSubmatch(item)
	if len(m) < 2 {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, sc.Bounds.ContainsYear(y)
}
