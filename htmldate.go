package htmldate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/cache"
	"github.com/mrjoshuak/htmldate/internal/dates"
	"github.com/mrjoshuak/htmldate/internal/document"
	"github.com/mrjoshuak/htmldate/internal/extractors"
	"github.com/mrjoshuak/htmldate/internal/metrics"
)

// Configuration errors. They are the only errors a search returns: dateless,
// oversized or unparsable documents yield a Result with Found set to false.
var (
	ErrInvalidFormat = errors.New("invalid output format")
	ErrInvalidBounds = errors.New("invalid date bounds")
)

// defaultMemo is shared by every finder that does not ask for its own.
var defaultMemo = cache.NewMemo(cache.DefaultSize)

// ResetCaches clears the shared parse memo.
func ResetCaches() {
	defaultMemo.Purge()
}

// Finder defines the interface for date extraction.
type Finder interface {
	// FindFromHTML searches an HTML string
	FindFromHTML(html string, options *SearchOptions) (*Result, error)

	// FindFromReader searches the markup read from r
	FindFromReader(r io.Reader, options *SearchOptions) (*Result, error)

	// FindFromNode searches an already parsed tree, which is left untouched
	FindFromNode(root *html.Node, options *SearchOptions) (*Result, error)
}

// Option represents a function that modifies SearchOptions.
type Option func(*SearchOptions)

// WithOriginalDate selects the publication date (true) or the last
// modification date (false, the default).
func WithOriginalDate(original bool) Option {
	return func(o *SearchOptions) {
		o.OriginalDate = original
	}
}

// WithExtensiveSearch enables or disables the slow free-text parser and the
// text pattern miner. Enabled by default.
func WithExtensiveSearch(extensive bool) Option {
	return func(o *SearchOptions) {
		o.ExtensiveSearch = extensive
	}
}

// WithOutputFormat sets the Go time layout of Result.Formatted. The layout
// must carry a full calendar date, otherwise searches fail with
// ErrInvalidFormat.
func WithOutputFormat(layout string) Option {
	return func(o *SearchOptions) {
		o.OutputFormat = layout
	}
}

// WithMinDate sets the earliest acceptable date.
func WithMinDate(t time.Time) Option {
	return func(o *SearchOptions) {
		o.MinDate = t
	}
}

// WithMaxDate sets the latest acceptable date.
func WithMaxDate(t time.Time) Option {
	return func(o *SearchOptions) {
		o.MaxDate = t
	}
}

// WithMinDateString sets the earliest acceptable date from an ISO date.
// An unparsable value keeps the default.
func WithMinDateString(s string) Option {
	return func(o *SearchOptions) {
		if t, ok := dates.ParseBound(s); ok {
			o.MinDate = t
		}
	}
}

// WithMaxDateString sets the latest acceptable date from an ISO date.
// An unparsable value keeps the default.
func WithMaxDateString(s string) Option {
	return func(o *SearchOptions) {
		if t, ok := dates.ParseBound(s); ok {
			o.MaxDate = t
		}
	}
}

// WithURL gives the page address, searched before the canonical link.
func WithURL(url string) Option {
	return func(o *SearchOptions) {
		o.URL = url
	}
}

// WithMaxDocumentSize sets the input ceiling in bytes. Larger documents are
// not parsed at all.
func WithMaxDocumentSize(size int) Option {
	return func(o *SearchOptions) {
		o.MaxDocumentSize = size
	}
}

// WithLogger routes the cascade's debug output to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *SearchOptions) {
		o.Logger = logger
	}
}

// WithCacheSize gives the finder a private parse memo of n entries.
// Zero selects the shared memo.
func WithCacheSize(n int) Option {
	return func(o *SearchOptions) {
		o.CacheSize = n
	}
}

// WithoutCache disables parse memoization. Results do not change.
func WithoutCache() Option {
	return func(o *SearchOptions) {
		o.CacheSize = -1
	}
}

// WithMetrics registers search counters and a duration histogram with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *SearchOptions) {
		o.Metrics = reg
	}
}

// dateFinder is the concrete implementation of the Finder interface.
type dateFinder struct {
	options SearchOptions
	memo    *cache.Memo
	metrics *metrics.Collector
}

// New creates a Finder configured with the provided options.
//
// Example:
//
//	finder := htmldate.New(
//	    htmldate.WithOriginalDate(true),
//	    htmldate.WithOutputFormat("02/01/2006"),
//	)
func New(opts ...Option) Finder {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	f := &dateFinder{options: options}
	if options.CacheSize > 0 {
		f.memo = cache.NewMemo(options.CacheSize)
	}
	if options.Metrics != nil {
		collector, err := metrics.New(options.Metrics)
		if err != nil {
			loggerOf(&options).Warn("metrics disabled", zap.Error(err))
		} else {
			f.metrics = collector
		}
	}
	return f
}

// FindFromHTML searches an HTML string.
func (f *dateFinder) FindFromHTML(markup string, options *SearchOptions) (*Result, error) {
	options = f.resolve(options)
	sc, err := f.searchContext(options)
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(markup, options.MaxDocumentSize)
	return f.find(doc, err, options, sc), nil
}

// FindFromReader reads at most MaxDocumentSize+1 bytes from r and searches them.
func (f *dateFinder) FindFromReader(r io.Reader, options *SearchOptions) (*Result, error) {
	options = f.resolve(options)
	sc, err := f.searchContext(options)
	if err != nil {
		return nil, err
	}
	doc, err := document.LoadReader(r, options.MaxDocumentSize)
	return f.find(doc, err, options, sc), nil
}

// FindFromNode searches an already parsed tree.
func (f *dateFinder) FindFromNode(root *html.Node, options *SearchOptions) (*Result, error) {
	options = f.resolve(options)
	sc, err := f.searchContext(options)
	if err != nil {
		return nil, err
	}
	doc, err := document.FromNode(root, options.MaxDocumentSize)
	return f.find(doc, err, options, sc), nil
}

func (f *dateFinder) resolve(options *SearchOptions) *SearchOptions {
	if options == nil {
		return &f.options
	}
	return options
}

// searchContext validates the configuration before any document is touched.
func (f *dateFinder) searchContext(o *SearchOptions) (dates.SearchContext, error) {
	layout := o.OutputFormat
	if layout == "" {
		layout = dates.DefaultLayout
	}
	if !dates.ValidateLayout(layout) {
		return dates.SearchContext{}, fmt.Errorf("%w: %q", ErrInvalidFormat, layout)
	}

	bounds := dates.DefaultBounds()
	if !o.MinDate.IsZero() {
		bounds.Min = dates.WallClock(o.MinDate)
	}
	if !o.MaxDate.IsZero() {
		bounds.Max = dates.WallClock(o.MaxDate)
	}
	if !bounds.Valid() {
		return dates.SearchContext{}, fmt.Errorf("%w: %s after %s", ErrInvalidBounds,
			bounds.Min.Format(time.DateOnly), bounds.Max.Format(time.DateOnly))
	}

	return dates.SearchContext{
		Original:  o.OriginalDate,
		Extensive: o.ExtensiveSearch,
		Layout:    layout,
		Bounds:    bounds,
		Memo:      f.memoFor(o),
		Logger:    loggerOf(o),
	}, nil
}

func (f *dateFinder) memoFor(o *SearchOptions) *cache.Memo {
	switch {
	case o.CacheSize < 0:
		return nil
	case o.CacheSize > 0 && f.memo != nil:
		return f.memo
	default:
		return defaultMemo
	}
}

func (f *dateFinder) find(doc *document.Document, loadErr error, o *SearchOptions, sc dates.SearchContext) *Result {
	if loadErr != nil {
		sc.Log().Debug("document rejected", zap.Error(loadErr))
		f.metrics.ObserveRejected(rejectReason(loadErr))
		return &Result{}
	}
	doc.URL = o.URL

	start := time.Now()
	c, ok := extractors.ExtractDate(doc, sc)
	if !ok {
		f.metrics.ObserveNotFound(time.Since(start))
		return &Result{}
	}
	f.metrics.ObserveFound(string(c.Source), time.Since(start))
	return &Result{
		Found:     true,
		Date:      c.Time,
		Formatted: c.Format(sc.Layout),
		Source:    string(c.Source),
		Precision: c.Precision.String(),
	}
}

func rejectReason(err error) string {
	switch {
	case document.IsSizeError(err):
		return "size"
	case document.IsParseError(err):
		return "parse"
	default:
		return "empty"
	}
}

func loggerOf(o *SearchOptions) *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// CheckOptions reports the configuration error a search with opts would
// return, without reading any document.
func CheckOptions(opts ...Option) error {
	f := New(opts...).(*dateFinder)
	_, err := f.searchContext(&f.options)
	return err
}

// FindDate searches an HTML string with the given options and returns the
// formatted date. Configuration errors are reported as not found.
func FindDate(markup string, opts ...Option) (string, bool) {
	res, err := New(opts...).FindFromHTML(markup, nil)
	if err != nil || !res.Found {
		return "", false
	}
	return res.Formatted, true
}
