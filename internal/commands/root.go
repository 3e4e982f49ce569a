// Package commands provides the dtvchat CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/diogo/dtvchat/internal/api"
	"github.com/diogo/dtvchat/internal/config"
	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/logging"
	"github.com/diogo/dtvchat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// app holds the flags and shared state of one CLI invocation
type app struct {
	deps *Dependencies

	// Persistent flags
	backendURL string
	verbose    bool
	logFile    string

	// Question flags (root and ask)
	outputFile string
	inputFile  string
	raw        bool

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree on top of deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	a := &app{
		deps:   deps,
		cfg:    config.DefaultConfig(),
		logger: zap.NewNop(),
	}

	rootCmd := &cobra.Command{
		Use:   "dtvchat [question]",
		Short: "Chat with the Thailand DTV visa consulting assistant",
		Long: `dtvchat is a terminal client for the Destination Thailand Visa (DTV)
consulting assistant. It sends your questions, together with the
conversation so far, to the reply service and shows the consultant's answers.

The reply service address is taken from --backend-url, DTV_BACKEND_URL,
NEXT_PUBLIC_BACKEND_URL or the config file, in that order. A .env file in
the working directory is loaded first.

Examples:
  dtvchat                               Start interactive chat
  dtvchat "What is DTV?"                Ask a single question
  dtvchat -f question.txt               Read the question from a file
  echo "How long is processing?" | dtvchat
  dtvchat ask "Requirements for Remote Workers" -o reply.md
  dtvchat health                        Check the reply service
  dtvchat config                        Configure settings`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(a.deps.Stdout, "dtvchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			question, ok, err := a.readQuestion(args)
			if err != nil {
				return err
			}
			if ok {
				return a.runAsk(cmd.Context(), question)
			}
			return a.runChat()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.backendURL, "backend-url", "", "Reply service base URL (overrides DTV_BACKEND_URL)")
	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Write debug logs to the log file")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Log file path (default ~/.dtvchat/dtvchat.log)")
	a.addQuestionFlags(rootCmd.Flags())
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.SetIn(deps.Stdin)
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	rootCmd.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newHealthCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps := NewDependencies()
	if err := NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		tui.FprintError(deps.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (a *app) addQuestionFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&a.outputFile, "output", "o", "", "Save the reply to file")
	flags.StringVarP(&a.inputFile, "file", "f", "", "Read the question from file")
	flags.BoolVar(&a.raw, "raw", false, "Print only the reply text")
}

// setup loads .env, the config file and the logger before any command runs
func (a *app) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := logging.Options{Verbose: a.verbose || cfg.Verbose, File: a.logFile}
	if opts.Verbose && opts.File == "" {
		if opts.File, err = config.GetLogPath(cfg); err != nil {
			return err
		}
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger = logger

	if cfg.TUITheme != "" && !tui.ApplyTheme(cfg.TUITheme) {
		a.logger.Warn("unknown TUI theme, keeping default", zap.String("theme", cfg.TUITheme))
	}
	return nil
}

// readQuestion returns the question from -f, piped stdin or the first
// argument, in that order. ok is false when none was given.
func (a *app) readQuestion(args []string) (string, bool, error) {
	if a.inputFile != "" {
		data, err := os.ReadFile(a.inputFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if a.deps.StdinIsPiped() {
		data, err := io.ReadAll(a.deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// newClient resolves the backend URL and builds the reply client.
// A missing URL is not an error here; the client reports it on use.
func (a *app) newClient() (api.ReplyClientInterface, error) {
	baseURL, err := config.ResolveBackendURL(a.backendURL, a.cfg)
	if err != nil && !errors.Is(err, apierrors.ErrMissingBackendURL) {
		return nil, err
	}
	a.logger.Debug("backend resolved", zap.String("backend_url", baseURL))

	client, err := a.deps.NewClient(baseURL, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
