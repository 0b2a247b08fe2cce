// Package dates normalizes short text fragments into calendar dates and checks
// them against plausibility bounds. Every detector of the extraction cascade
// funnels its candidates through TryDate.
package dates

import (
	"time"

	"go.uber.org/zap"

	"github.com/mrjoshuak/htmldate/internal/cache"
)

// Tuned constants shared by the cascade. They are empirical and must not drift.
const (
	// DefaultLayout is the output layout used when none is configured.
	DefaultLayout = "2006-01-02"

	// MinSegmentLen is the shortest fragment worth parsing.
	MinSegmentLen = 6

	// MaxSegmentLen is the number of characters of a fragment that are examined.
	MaxSegmentLen = 48

	// MinDigits is the minimum number of digits a fragment must contain.
	MinDigits = 4
)

// DefaultMinDate is the default plausibility floor.
var DefaultMinDate = time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)

// Source names the detector that produced a candidate.
type Source string

// Detectors, in cascade order.
const (
	SourceUnknown      Source = ""
	SourceURL          Source = "url"
	SourceHeader       Source = "header"
	SourceJSONLD       Source = "json-ld"
	SourceAbbr         Source = "abbr"
	SourceTime         Source = "time"
	SourceElement      Source = "element"
	SourceDiscarded    Source = "discarded"
	SourceTimestamp    Source = "timestamp"
	SourceIdiosyncrasy Source = "idiosyncrasy"
	SourceTitle        Source = "title"
	SourcePartialURL   Source = "partial-url"
	SourceImage        Source = "image"
	SourceFreeText     Source = "free-text"
	SourcePattern      Source = "pattern"
	SourceCopyright    Source = "copyright"
	SourceYear         Source = "year"
)

// Precision tells how much of a candidate was actually observed.
type Precision int

const (
	// PrecisionDay means year, month and day were all present.
	PrecisionDay Precision = iota
	// PrecisionMonth means the day defaulted to 1.
	PrecisionMonth
	// PrecisionYear means month and day were defaulted.
	PrecisionYear
)

// String returns a string representation of the precision
func (p Precision) String() string {
	switch p {
	case PrecisionDay:
		return "day"
	case PrecisionMonth:
		return "month"
	case PrecisionYear:
		return "year"
	default:
		return "unknown"
	}
}

// Candidate is a validated calendar date with its provenance.
type Candidate struct {
	Time      time.Time
	Source    Source
	Precision Precision
}

// From returns a copy of the candidate attributed to the given source.
func (c Candidate) From(src Source) Candidate {
	c.Source = src
	return c
}

// Format renders the candidate with the given layout.
func (c Candidate) Format(layout string) string {
	return c.Time.Format(layout)
}

// Bounds is an inclusive plausibility window.
type Bounds struct {
	Min time.Time
	Max time.Time
}

// DefaultBounds returns the default window, from DefaultMinDate to now.
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMinDate, Max: time.Now().UTC()}
}

// SearchContext is the immutable per-call bundle threaded through every stage.
// Memo and Logger are collaborators: they never change an outcome.
type SearchContext struct {
	Original  bool   // seek the earliest (published) date instead of the latest (modified)
	Extensive bool   // enable the slow parser and the text pattern miner
	Layout    string // output layout, validated beforehand
	Bounds    Bounds
	Memo      *cache.Memo
	Logger    *zap.Logger
}

// NewSearchContext returns a context with default layout, bounds and a no-op logger.
func NewSearchContext() SearchContext {
	return SearchContext{
		Extensive: true,
		Layout:    DefaultLayout,
		Bounds:    DefaultBounds(),
		Logger:    zap.NewNop(),
	}
}

// Log returns the configured logger, never nil.
func (sc SearchContext) Log() *zap.Logger {
	if sc.Logger == nil {
		return zap.NewNop()
	}
	return sc.Logger
}

func (sc SearchContext) layout() string {
	if sc.Layout == "" {
		return DefaultLayout
	}
	return sc.Layout
}
