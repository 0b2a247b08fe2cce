// Package extractor runs date searches over many documents at once with a
// bounded pool of workers sharing one Finder and its parse memo.
package extractor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mrjoshuak/htmldate"
)

// Loader turns a batch input, a URL or a file path, into markup.
type Loader interface {
	Load(ctx context.Context, input string) (string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, input string) (string, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, input string) (string, error) {
	return f(ctx, input)
}

// FileLoader reads inputs as local files.
var FileLoader = LoaderFunc(func(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
})

// Item is the outcome for one input. Err reports a loading failure or a
// configuration error; a document without a date has a nil Err and a Result
// with Found set to false.
type Item struct {
	Input  string           `json:"input"`
	Result *htmldate.Result `json:"result,omitempty"`
	Err    error            `json:"-"`
}

// Option represents a function that modifies a Batch.
type Option func(*Batch)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(b *Batch) {
		b.workers = n
	}
}

// WithSearchOptions configures the date search of every input.
func WithSearchOptions(opts ...htmldate.Option) Option {
	return func(b *Batch) {
		b.search = append(b.search, opts...)
	}
}

// WithLoader sets how inputs are turned into markup. Files by default.
func WithLoader(l Loader) Option {
	return func(b *Batch) {
		b.loader = l
	}
}

// WithLogger sets the logger used to report failed inputs.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Batch) {
		b.logger = logger
	}
}

// Batch extracts dates from many documents.
type Batch struct {
	search  []htmldate.Option
	options htmldate.SearchOptions
	finder  htmldate.Finder
	loader  Loader
	workers int
	logger  *zap.Logger
}

// New creates a Batch.
func New(opts ...Option) *Batch {
	b := &Batch{
		loader:  FileLoader,
		workers: 4,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers <= 0 {
		b.workers = 1
	}
	b.options = htmldate.DefaultOptions()
	for _, opt := range b.search {
		opt(&b.options)
	}
	b.finder = htmldate.New(b.search...)
	return b
}

// Run processes every input and returns the items in input order. Inputs
// not started when ctx is done get ctx.Err().
func (b *Batch) Run(ctx context.Context, inputs []string) []Item {
	items := make([]Item, len(inputs))
	if len(inputs) == 0 {
		return items
	}

	jobs := make(chan int, b.workers*2)
	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				items[i] = b.process(ctx, inputs[i])
			}
		}()
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
			items[i] = Item{Input: inputs[i], Err: ctx.Err()}
			continue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return items
}

func (b *Batch) process(ctx context.Context, input string) Item {
	item := Item{Input: input}
	if err := ctx.Err(); err != nil {
		item.Err = err
		return item
	}

	markup, err := b.loader.Load(ctx, input)
	if err != nil {
		b.logger.Debug("input skipped", zap.String("input", input), zap.Error(err))
		item.Err = err
		return item
	}

	options := b.options
	if IsURL(input) {
		options.URL = input
	}
	item.Result, item.Err = b.finder.FindFromHTML(markup, &options)
	return item
}

// IsURL reports whether a batch input is a web address rather than a path.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// ReadInputs reads one input per line, skipping blank lines, comments and
// duplicates.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan inputs: %w", err)
	}
	return inputs, nil
}
