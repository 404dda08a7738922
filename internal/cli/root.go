package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/billmal071/finna/internal/config"
	"github.com/billmal071/finna/internal/db"
	"github.com/billmal071/finna/internal/finna"
	"github.com/billmal071/finna/internal/launcher"
	"github.com/billmal071/finna/internal/logging"
	"github.com/billmal071/finna/internal/render"
	"github.com/billmal071/finna/internal/repl"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	verbose       bool
	noColor       bool
	noInteractive bool

	// flagParams receives the search options; only the ones given on the
	// command line override the configured defaults
	flagParams = finna.DefaultParameters()

	logger    = logging.Discard()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "finna [query...]",
	Short: "Search the Finna library catalog",
	Long: `finna searches the Finna catalog of Finnish libraries, archives and museums.

A search prints the first result page and starts an interactive prompt.
Type new words to search again or a colon command to act on the results.
Type :help at the prompt for the list of commands.

Examples:
  finna kalevala                          Search and start the prompt
  finna -f 'format:"0/Book/"' sibelius    Search books only
  finna --lng sv -l 5 "Tove Jansson"      Five results, labels in Swedish
  finna --no-interactive kissa            Print one page and exit
  finna browse kalevala                   Pick a result from a list`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := searchParameters(config.Get(), cmd.Flags(), flagParams, args)
		return startSession(cmd, params)
	},
}

// Execute runs the root command and releases the database and log file
// however it ends
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func teardown() {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
	logger = logging.Discard()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/finna/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	repl.BindSearchFlags(rootCmd.PersistentFlags(), &flagParams)
	rootCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "print the first result page and exit")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)

	registerCompletions()
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(cfgFile); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.Get()

	render.Setup(os.Stdout, noColor)

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = config.GetLogPath()
	}
	l, closer, err := logging.New(logging.Options{
		Level:    level,
		File:     logFile,
		MaxSize:  cfg.Logging.MaxSize,
		MaxFiles: cfg.Logging.MaxFiles,
	})
	if err != nil {
		Printf("Logging disabled: %v\n", err)
	} else {
		logger, logCloser = l, closer
	}

	if err := db.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// newClient creates the API client from configuration
func newClient(cfg *config.Config) *finna.APIClient {
	opts := []finna.Option{
		finna.WithTimeout(cfg.Network.Timeout),
		finna.WithLogger(logger),
	}
	if cfg.Network.UserAgent != "" {
		opts = append(opts, finna.WithUserAgent(cfg.Network.UserAgent))
	}
	if cfg.Network.Progress && render.IsTerminal(os.Stderr) {
		opts = append(opts, finna.WithProgress(os.Stderr))
	}
	return finna.NewAPIClient(cfg.API.BaseURL, opts...)
}

func settings(cfg *config.Config) repl.Settings {
	return repl.Settings{
		SiteBaseURL: cfg.Site.BaseURL,
		ImageHost:   cfg.Site.ImageURL,
	}
}

// startSession runs the first search, if any, and then the prompt
func startSession(cmd *cobra.Command, params finna.SearchParameters) error {
	cfg := config.Get()

	var history repl.History
	if cfg.History.Enabled {
		history = db.Store{}
	}

	r := repl.New(repl.Options{
		Gateway:  newClient(cfg),
		Launcher: launcher.NewSystem(cfg.Viewer.ImageCommand),
		History:  history,
		In:       os.Stdin,
		Out:      os.Stdout,
		Logger:   logger,
		Settings: settings(cfg),
	}, params)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasQuery := params.LookforString() != "" || len(params.Filters) > 0
	if noInteractive && !hasQuery {
		return fmt.Errorf("a query is required with --no-interactive")
	}

	if hasQuery {
		Printf("Searching for: %s\n", params.LookforString())
		if err := r.Search(ctx, params); err != nil {
			logger.Warn("search failed", slog.String("query", params.LookforString()), slog.Any("error", err))
			if noInteractive {
				return err
			}
			render.Error(os.Stderr, err)
		}
	}
	if noInteractive {
		return nil
	}

	return r.Run(ctx)
}

// Printf prints if verbose mode is enabled
func Printf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

// Errorf prints an error message to stderr
func Errorf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, render.ErrorStyle.Render(fmt.Sprintf("Error: "+format, args...)))
}

// Successf prints a success message
func Successf(format string, args ...interface{}) {
	fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("✓ "+format, args...)))
}
