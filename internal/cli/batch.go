package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrjoshuak/htmldate"
	"github.com/mrjoshuak/htmldate/extractor"
	"github.com/mrjoshuak/htmldate/internal/fetch"
)

func newBatchCmd(a *app) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Find the dates of many pages in parallel",
		Long: `Batch reads URLs or file paths from a file, one per line ('-' for standard
input), and prints one tab separated line per input: the input and its date,
empty when none was found.

Example:
  htmldate batch urls.txt --workers 8 --rate 2 --respect-robots
  htmldate batch urls.txt --metrics-addr :9090 --json`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBatch,
	}

	batchCmd.Flags().Int("workers", DefaultConfig().Batch.Workers, "number of concurrent workers")
	batchCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	bindFlags(a.viper, batchCmd.Flags())
	return batchCmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	opts := append(a.config.Options(), htmldate.WithLogger(a.logger))
	if err := htmldate.CheckOptions(opts...); err != nil {
		return err
	}

	if addr := a.config.Batch.MetricsAddr; addr != "" {
		registry := prometheus.NewRegistry()
		opts = append(opts, htmldate.WithMetrics(registry))
		stop := a.serveMetrics(addr, registry)
		defer stop()
	}

	fetcher := fetch.NewFetcher(a.config.fetchConfig(), a.logger)
	timeoutLoader := extractor.LoaderFunc(func(ctx context.Context, input string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, a.config.Fetch.Timeout)
		defer cancel()
		return a.loader(fetcher).Load(ctx, input)
	})

	b := extractor.New(
		extractor.WithSearchOptions(opts...),
		extractor.WithWorkers(a.config.Batch.Workers),
		extractor.WithLoader(timeoutLoader),
		extractor.WithLogger(a.logger),
	)

	start := time.Now()
	items := b.Run(cmd.Context(), inputs)

	found := 0
	out := cmd.OutOrStdout()
	for _, item := range items {
		if item.Err != nil {
			a.logger.Warn("no document", zap.String("input", item.Input), zap.Error(item.Err))
		}
		if item.Result != nil && item.Result.Found {
			found++
		}
		if err := a.printItem(out, item); err != nil {
			return err
		}
	}

	a.logger.Info("batch complete",
		zap.Int("inputs", len(items)),
		zap.Int("found", found),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (a *app) printItem(w io.Writer, item extractor.Item) error {
	res := item.Result
	if res == nil {
		res = &htmldate.Result{}
	}
	if a.config.Search.JSON {
		data, err := json.Marshal(struct {
			Input string `json:"input"`
			*htmldate.Result
		}{item.Input, res})
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", item.Input, res.Formatted)
	return err
}

func readInputs(stdin io.Reader, path string) ([]string, error) {
	if path == "-" {
		return extractor.ReadInputs(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input list: %w", err)
	}
	defer func() { _ = file.Close() }()
	return extractor.ReadInputs(file)
}

// serveMetrics exposes registry over HTTP until the returned function is called.
func (a *app) serveMetrics(addr string, registry *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	a.logger.Info("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
