// Package commands provides the inquisitive command line: the chat TUI plus
// one-shot and maintenance subcommands.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"inquisitive/config"
	"inquisitive/model"
	"inquisitive/provider"
	"inquisitive/ui"
)

var (
	// Global flags
	providerFlag string
	modelFlag    string

	// Version info (set at build time)
	Version = "v0.1.0"

	// newProvider builds the model client for a loaded config
	newProvider = provider.InitializeProvider
)

// rootCmd starts the chat TUI
var rootCmd = &cobra.Command{
	Use:   "inquisitive",
	Short: "Terminal chat with Inquisitive AI",
	Long: `inquisitive is a terminal chat client for hosted and local language models.

Examples:
  inquisitive                         Start the chat TUI
  inquisitive ask "What is Go?"       Ask one question
  echo "What is Go?" | inquisitive ask
  inquisitive key set openai          Store an API key
  inquisitive config --ping           Show settings and test the provider`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Version:      Version,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "",
		"Provider to use (openai, openrouter, anthropic, ollama)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., gpt-4o-mini)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keyCmd)
}

// loadConfig loads settings, applies the global flags on top of env
// overrides and opens the debug log.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if providerFlag != "" {
		cfg.DefaultProvider = providerFlag
	}
	if modelFlag != "" {
		cfg.ModelOverride = modelFlag
	}

	config.InitDebugLog(cfg.DataDir())
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return showStartupError("Configuration Error", err)
	}

	p, err := newProvider(cfg)
	if err != nil {
		return showStartupError("Provider Error", err)
	}

	bar := ui.NewNotificationBar()
	dataModel := model.NewModel(cfg, p, bar, Version)

	prog := tea.NewProgram(
		ui.NewAppView(dataModel, bar),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Main] Exiting session %s", dataModel.Session.ID)
	}
	return nil
}

// showStartupError shows cause in the error modal. The cause is returned
// only when the modal itself cannot run.
func showStartupError(title string, cause error) error {
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Main] %s: %v", title, cause)
	}

	p := tea.NewProgram(ui.NewErrorModal(title, cause), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return cause
	}
	return nil
}
