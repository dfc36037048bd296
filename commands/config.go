package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"inquisitive/config"
	"inquisitive/provider"
)

var (
	pingFlag bool
	saveFlag bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the settings inquisitive would use, after env and flag overrides.

API keys are never printed; only where one was found.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&pingFlag, "ping", false, "Check that the provider is reachable")
	configCmd.Flags().BoolVar(&saveFlag, "save", false, "Write the selected provider and model to config.toml")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeConfig(out, cfg)

	if saveFlag {
		if err := cfg.SaveDefaults(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(out, "%-13s %s\n", "Saved:", config.GetUserConfigFilePath(cfg.DataDir()))
	}

	if !pingFlag {
		return nil
	}

	p, err := newProvider(cfg)
	if err != nil {
		return err
	}
	if err := provider.PingProvider(cmd.Context(), p); err != nil {
		fmt.Fprintf(out, "%-13s failed\n", "Ping:")
		return err
	}
	fmt.Fprintf(out, "%-13s ok\n", "Ping:")

	if lister, ok := p.(provider.ModelLister); ok {
		return writeModels(cmd.Context(), out, lister, p.GetModel())
	}
	return nil
}

// writeModels lists the installed models and marks the configured one. A
// configured model that is not installed is reported, not treated as an error.
func writeModels(ctx context.Context, w io.Writer, lister provider.ModelLister, configured string) error {
	models, err := lister.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	found := false
	fmt.Fprintf(w, "%-13s %d installed\n", "Models:", len(models))
	for _, m := range models {
		marker := " "
		if m.Name == configured {
			marker, found = "*", true
		}
		fmt.Fprintf(w, "  %s %-40s %s\n", marker, m.Name, humanize.Bytes(uint64(m.Size)))
	}
	if !found {
		fmt.Fprintf(w, "  %s is not installed (ollama pull %s)\n", configured, configured)
	}
	return nil
}

func writeConfig(w io.Writer, cfg *config.Config) {
	active := cfg.ActiveProvider()

	keySource := cfg.APIKeySource(active.ID)
	switch {
	case keySource != "":
	case !config.RequiresAPIKey(active.ID):
		keySource = "not required"
	default:
		keySource = "missing (set " + config.KeyEnvHint(active.ID) + ")"
	}

	debug := "off"
	if config.CheckDebug() {
		debug = cfg.DataDir() + "/debug.log"
	}

	rows := [][2]string{
		{"Settings:", config.GetSettingsFilePath()},
		{"Config file:", config.GetUserConfigFilePath(cfg.DataDir())},
		{"Data dir:", cfg.DataDir()},
		{"Provider:", fmt.Sprintf("%s (%s)", active.ID, active.Name)},
		{"Model:", active.Model},
		{"Base URL:", active.BaseURL},
		{"Temperature:", fmt.Sprintf("%g", cfg.Generation.Temperature)},
		{"Max tokens:", fmt.Sprintf("%d", cfg.Generation.MaxTokens)},
		{"API key:", keySource},
		{"Credentials:", string(cfg.Security.CredentialsStorage)},
		{"Debug log:", debug},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-13s %s\n", row[0], row[1])
	}
}
