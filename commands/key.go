package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"inquisitive/config"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage stored API keys",
	Long: `Store or remove provider API keys in the data directory.

Keys set through the environment always take precedence over stored keys.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store an API key (read from stdin or prompted)",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeySet,
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyDelete,
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyDeleteCmd)
}

func checkKeyProvider(providerID string) error {
	if !slices.Contains(config.KnownProviders, providerID) {
		return fmt.Errorf("unknown provider %q (known: %s)", providerID, strings.Join(config.KnownProviders, ", "))
	}
	if !config.RequiresAPIKey(providerID) {
		return fmt.Errorf("%s does not use an API key", providerID)
	}
	return nil
}

// openStore reloads the credential store strictly so a write never replaces
// keys that failed to decrypt.
func openStore(cfg *config.Config) (*config.CredentialStore, error) {
	store := cfg.CredentialStore
	if err := store.Load(cfg.DataDir()); err != nil {
		return nil, fmt.Errorf("failed to read credential store: %w", err)
	}
	return store, nil
}

func runKeySet(cmd *cobra.Command, args []string) error {
	providerID := args[0]
	if err := checkKeyProvider(providerID); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	apiKey, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("API key for %s: ", providerID))
	if err != nil {
		return err
	}

	if err := store.Set(providerID, apiKey); err != nil {
		return err
	}
	if err := store.Save(cfg.DataDir()); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Key] Stored key for %s (%s)", providerID, store.GetMethod())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s (%s)\n", providerID, store.GetMethod())
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	providerID := args[0]
	if err := checkKeyProvider(providerID); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if !store.Has(providerID) {
		return fmt.Errorf("no stored API key for %s", providerID)
	}
	if err := store.Delete(providerID); err != nil {
		return err
	}
	if err := store.Save(cfg.DataDir()); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted API key for %s\n", providerID)
	return nil
}

// readSecret prompts without echo on a terminal, otherwise reads one line.
func readSecret(in io.Reader, prompt io.Writer, label string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, label)
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
