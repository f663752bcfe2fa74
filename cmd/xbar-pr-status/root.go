package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/xbar-pr-status/internal/adapter/driven/github"
	"github.com/ericfisherdev/xbar-pr-status/internal/adapter/driving/xbar"
	"github.com/ericfisherdev/xbar-pr-status/internal/application"
	"github.com/ericfisherdev/xbar-pr-status/internal/config"
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
)

type options struct {
	since     int
	emojiFile string
	logLevel  string
	emoji     map[model.DisplayKind]*string
}

func newRootCmd() *cobra.Command {
	cmd, _ := buildRootCmd()
	return cmd
}

// buildRootCmd returns the root command together with the options its flags bind to.
func buildRootCmd() (*cobra.Command, *options) {
	opts := &options{emoji: map[model.DisplayKind]*string{}}

	cmd := &cobra.Command{
		Use:   "xbar-pr-status",
		Short: "Show the merge-readiness of your open GitHub pull requests in xbar",
		Long: `xbar-pr-status queries GitHub for the viewer's open pull requests and prints
one status glyph per pull request followed by a drill-down menu, in the
xbar/SwiftBar plugin format.

A token with the repo and read:user scopes must be set in GITHUB_API_TOKEN.`,
		Version:       fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.since, "since", 0, "Ignore PRs last updated more than this many days ago (overrides SINCE)")
	cmd.Flags().StringVar(&opts.emojiFile, "emoji-file", "", "YAML file of glyph overrides keyed by status (overrides XBAR_PR_STATUS_EMOJI_FILE)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level on stderr: debug, info, warn, error (overrides XBAR_PR_STATUS_LOG)")
	for _, kind := range model.DisplayKinds {
		opts.emoji[kind] = cmd.Flags().String(emojiFlag(kind), "", fmt.Sprintf("Glyph for the %s status (overrides %s)", kind, config.EmojiEnvVar(kind)))
	}

	cmd.AddCommand(newCopyCmd())

	return cmd, opts
}

// emojiFlag returns the flag name for kind, e.g. emoji-success-and-approved.
func emojiFlag(kind model.DisplayKind) string {
	return "emoji-" + strings.ReplaceAll(string(kind), "_", "-")
}

// apply layers explicitly set flags over the environment configuration.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("since") {
		if o.since < 0 {
			return fmt.Errorf("--since has negative day count %d", o.since)
		}
		since := o.since
		cfg.SinceDays = &since
	}

	if flags.Changed("log-level") {
		level, err := config.ParseLogLevel(o.logLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}

	if flags.Changed("emoji-file") {
		cfg.EmojiFile = o.emojiFile
		if err := cfg.ApplyEmojiFile(o.emojiFile); err != nil {
			return fmt.Errorf("--emoji-file: %w", err)
		}
	}

	for kind, glyph := range o.emoji {
		if flags.Changed(emojiFlag(kind)) && *glyph != "" {
			cfg.Emoji[kind] = *glyph
		}
	}

	return nil
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Debug("config loaded", "since_days", cfg.SinceDays, "emoji_file", cfg.EmojiFile, "emoji_overrides", len(cfg.Emoji))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	githubadapter.Version = Version
	client := githubadapter.NewClient(cfg.GitHubToken)
	statusSvc := application.NewStatusService(client)

	prs, err := statusSvc.Load(ctx, cfg.SinceDays)
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable for copy actions: %w", err)
	}

	renderer := xbar.NewRenderer(xbar.NewEmoji(cfg.Emoji), self)
	if _, err := io.WriteString(out, renderer.Document(prs)); err != nil {
		return fmt.Errorf("writing menu: %w", err)
	}
	return nil
}
