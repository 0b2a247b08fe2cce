// Package types provides the core data structures for the htmldate library.
package types

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Result is the outcome of one date search.
// When Found is false every other field is zero.
type Result struct {
	Found     bool      `json:"found"`
	Date      time.Time `json:"date,omitzero"`
	Formatted string    `json:"formatted,omitempty"`
	Source    string    `json:"source,omitempty"`
	Precision string    `json:"precision,omitempty"`
}

// String returns the formatted date, or an empty string when none was found.
func (r *Result) String() string {
	if r == nil || !r.Found {
		return ""
	}
	return r.Formatted
}

// SearchOptions configures a date search.
// The zero MinDate and MaxDate select the defaults, 1995-01-01 and the
// current time.
type SearchOptions struct {
	OriginalDate    bool                  // look for the publication date instead of the last modification
	ExtensiveSearch bool                  // enable the slow parser and the text pattern miner
	OutputFormat    string                // Go time layout of Result.Formatted
	MinDate         time.Time             // earliest acceptable date
	MaxDate         time.Time             // latest acceptable date
	URL             string                // page address, used before the canonical link
	MaxDocumentSize int                   // input ceiling in bytes
	CacheSize       int                   // 0 shares the default memo, > 0 a private one, < 0 disables it
	Logger          *zap.Logger           // debug output of the cascade
	Metrics         prometheus.Registerer // where to register search metrics, nil for none
}

// DefaultOptions returns the default search options: latest date, extensive
// search, ISO output and a 20 MB input ceiling.
func DefaultOptions() SearchOptions {
	return SearchOptions{
		OriginalDate:    false,
		ExtensiveSearch: true,
		OutputFormat:    "2006-01-02",
		MaxDocumentSize: 20_000_000,
	}
}
