package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"comment-translator/internal/batch"
	"comment-translator/internal/commands"
	"comment-translator/internal/config"
	"comment-translator/internal/editor"
	"comment-translator/internal/mcpserver"
	"comment-translator/internal/scanner"
	"comment-translator/internal/translation"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set via -ldflags during build.
var Version = "dev"

type rootOptions struct {
	cfgFile  string
	logLevel string
}

// Execute runs the CLI application.
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree reading prompts from in and writing
// picker output to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "comment-translator",
		Short:         "List source code comments and translate them in place",
		Long:          "Finds the comments of a source file with per-language heuristics, lets you jump to one, or translates all of them through a translation provider and rewrites the file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "Config file (default: comment-translator.yaml in . or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(showCmd(opts, in, out))
	rootCmd.AddCommand(translateCmd(opts, in, out))
	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(profilesCmd(out))

	return rootCmd
}

func showCmd(opts *rootOptions, in io.Reader, out io.Writer) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "List the comments of a file and jump to the one you pick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			if _, err := loadConfig(opts); err != nil {
				return err
			}

			host := editor.NewFile(args[0], language, in, out)
			_, err := commands.ShowComments(ctx, host)
			return err
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "Language identifier (default: derived from the file extension)")
	return cmd
}

func translateCmd(opts *rootOptions, in io.Reader, out io.Writer) *cobra.Command {
	var language, target string
	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate every comment of a file in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], language, target, in, out)
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "Language identifier (default: derived from the file extension)")
	cmd.Flags().StringVar(&target, "to", "", "Target language code (default: target_language from config)")
	return cmd
}

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve show_comments and translate_comments as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			runner, target, err := newRunner(cfg, "")
			if err != nil {
				return err
			}

			log.Info().Str("provider", cfg.Provider).Str("target", target).Msg("Starting MCP server on stdio")
			return server.ServeStdio(mcpserver.New(runner, target).MCPServer(Version))
		},
	}
}

func profilesCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the comment profiles and the languages that select them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range scanner.Profiles() {
				languages := strings.Join(p.Languages, ", ")
				if p.Name == scanner.DefaultProfile().Name {
					languages = "(default)"
				}
				fmt.Fprintf(out, "%-6s %-12s %s\n", p.Name, languages, p.Pattern)
			}
			return nil
		},
	}
}

// runTranslate handles the `translate` command.
func runTranslate(opts *rootOptions, path, language, target string, in io.Reader, out io.Writer) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	runner, target, err := newRunner(cfg, target)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Str("provider", cfg.Provider).
		Str("target", target).
		Msg("Translating comments")

	host := editor.NewFile(path, language, in, out)
	_, err = commands.TranslateComments(ctx, host, runner, target)
	return err
}

// loadConfig reads the configuration and applies its log level unless
// --log-level was given.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, err
	}
	if opts.logLevel == "" {
		if err := setupLogging(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newRunner builds the batch runner from cfg. target overrides the configured
// target language when set.
func newRunner(cfg *config.Config, target string) (*batch.Runner, string, error) {
	if target == "" {
		target = cfg.TargetLanguage
	}
	target, err := translation.NormalizeLanguage(target)
	if err != nil {
		return nil, "", err
	}

	tr, err := translation.New(translation.Options{
		Provider:          cfg.Provider,
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		BaseURL:           cfg.BaseURL,
		Proxy:             cfg.Proxy,
		Timeout:           cfg.Timeout,
		MaxAttempts:       cfg.MaxAttempts,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create translator: %w", err)
	}

	return &batch.Runner{Translator: tr, MaxConcurrent: cfg.MaxConcurrent}, target, nil
}

// setupLogging points the global logger at stderr. Colors are only used on a terminal.
func setupLogging(level string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		TimeFormat: time.TimeOnly,
	})

	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
