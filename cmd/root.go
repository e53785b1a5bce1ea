package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/noro/internal/app"
	"github.com/zhubert/noro/internal/config"
	"github.com/zhubert/noro/internal/logger"
	"github.com/zhubert/noro/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	themeName             string
	replyDelay            time.Duration
	logFile               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "noro",
	Short: "Noro AI Chat in your terminal",
	Long: `noro is a terminal chat shell: a collapsible sidebar, a landing screen
with suggestions, a message composer and a transcript answered by canned
bot replies. Nothing is sent anywhere and nothing is saved but your
preferences.`,
	Args:          cobra.NoArgs,
	PreRunE:       validateFlags,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logger.DefaultLogPath, "Write logs to this file")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "UI theme for this run (overrides the saved theme)")
	rootCmd.Flags().DurationVar(&replyDelay, "reply-delay", 0, "How long the bot waits before answering, e.g. 500ms (overrides the saved delay)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// validateFlags rejects flag values the app cannot use.
func validateFlags(cmd *cobra.Command, args []string) error {
	if themeName != "" && !ui.IsValidTheme(themeName) {
		return fmt.Errorf("unknown theme %q (available: %v)", themeName, ui.ThemeNames())
	}
	if cmd.Flags().Changed("reply-delay") && (replyDelay <= 0 || replyDelay > config.MaxReplyDelay) {
		return fmt.Errorf("--reply-delay must be positive and at most %s", config.MaxReplyDelay)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("noro %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("noro %s\n", version)
}

// applyOverrides copies flag overrides onto the loaded config. They last
// for this run only unless the user saves settings.
func applyOverrides(cfg *config.Config) {
	if themeName != "" {
		cfg.SetTheme(themeName)
	}
	if replyDelay > 0 {
		cfg.SetReplyDelay(replyDelay)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logFile); err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	// Ensure logger is closed on exit
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	applyOverrides(cfg)

	m := app.New(cfg, version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
