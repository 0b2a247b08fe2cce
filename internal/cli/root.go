// Package cli implements the htmldate command line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mrjoshuak/htmldate"
	"github.com/mrjoshuak/htmldate/extractor"
	"github.com/mrjoshuak/htmldate/internal/fetch"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	viper   *viper.Viper
	cfgFile string
	config  Config
	logger  *zap.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree with fresh flag and config state.
func NewRootCommand() *cobra.Command {
	a := &app{viper: viper.New(), logger: zap.NewNop()}
	setDefaults(a.viper)

	rootCmd := &cobra.Command{
		Use:   "htmldate [url|file]",
		Short: "Find the publication or modification date of a web page",
		Long: `htmldate reads an HTML document from a URL, a file or standard input and
prints the date it was last modified, or with --original the date it was
first published. Nothing is printed when no plausible date is found.

Example:
  htmldate https://example.org/blog/post.html
  htmldate --original --format 02.01.2006 page.html
  curl -s https://example.org | htmldate --fast`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(a.viper, a.cfgFile); err != nil {
				return err
			}
			a.config = configFrom(a.viper)
			a.logger = newLogger(a.config.Log, cmd.ErrOrStderr())
			return nil
		},
		RunE: a.runFind,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.htmldate/config.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-file", "", "also write logs to this file, rotated by size")
	flags.BoolP("original", "o", false, "look for the publication date instead of the last modification")
	flags.Bool("fast", false, "skip the slow parser and the text pattern search")
	flags.StringP("format", "f", DefaultConfig().Search.Format, "output date layout, in Go time layout syntax")
	flags.String("min-date", "", "earliest acceptable date (YYYY-MM-DD)")
	flags.String("max-date", "", "latest acceptable date (YYYY-MM-DD)")
	flags.Int("max-size", DefaultConfig().Search.MaxSize, "maximum document size in bytes")
	flags.Bool("json", false, "print the full result as JSON")
	flags.Duration("timeout", fetch.DefaultTimeout, "download timeout")
	flags.String("user-agent", fetch.DefaultUserAgent, "HTTP User-Agent")
	flags.Bool("respect-robots", false, "skip pages disallowed by robots.txt")
	flags.Float64("rate", 0, "maximum requests per second and host, 0 for no limit")
	flags.Duration("cache-ttl", fetch.DefaultCacheTTL, "how long downloaded pages are kept")
	bindFlags(a.viper, flags)

	rootCmd.AddCommand(newBatchCmd(a), newConfigCmd(a), newVersionCmd())
	return rootCmd
}

func (a *app) runFind(cmd *cobra.Command, args []string) error {
	opts := append(a.config.Options(), htmldate.WithLogger(a.logger))
	if err := htmldate.CheckOptions(opts...); err != nil {
		return err
	}

	var input io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		ctx, cancel := context.WithTimeout(cmd.Context(), a.config.Fetch.Timeout)
		defer cancel()

		markup, err := a.loader(fetch.NewFetcher(a.config.fetchConfig(), a.logger)).Load(ctx, args[0])
		if err != nil {
			a.logger.Warn("no document", zap.String("input", args[0]), zap.Error(err))
			return a.print(cmd.OutOrStdout(), &htmldate.Result{})
		}
		if extractor.IsURL(args[0]) {
			opts = append(opts, htmldate.WithURL(args[0]))
		}
		input = strings.NewReader(markup)
	}

	start := time.Now()
	res, err := htmldate.New(opts...).FindFromReader(input, nil)
	if err != nil {
		return err
	}
	a.logger.Debug("search finished",
		zap.Bool("found", res.Found),
		zap.String("source", res.Source),
		zap.Duration("elapsed", time.Since(start)))
	return a.print(cmd.OutOrStdout(), res)
}

// loader fetches URLs and reads everything else from disk.
func (a *app) loader(f *fetch.Fetcher) extractor.Loader {
	return extractor.LoaderFunc(func(ctx context.Context, input string) (string, error) {
		if !extractor.IsURL(input) {
			return extractor.FileLoader.Load(ctx, input)
		}
		res, err := f.Fetch(ctx, input)
		if err != nil {
			return "", err
		}
		return res.HTML, nil
	})
}

func (a *app) print(w io.Writer, res *htmldate.Result) error {
	if a.config.Search.JSON {
		data, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if !res.Found {
		return nil
	}
	_, err := fmt.Fprintln(w, res.Formatted)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := htmldate.GetBuildInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", info.Name, info.Version, info.GoVersion)
			return err
		},
	}
}
