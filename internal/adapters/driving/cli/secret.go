package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage encrypted API keys",
	Long: `Store, read, and remove provider API keys.

Keys are sealed with AES-256-GCM under a key derived from this machine and
stored as <provider>_key.json in the config directory.

Examples:
  # Store a Gemini key (prompts without echo)
  spatialshot secret set gemini

  # Store an ImgBB key from a script
  spatialshot secret set imgbb "$IMGBB_KEY"

  # Print a stored key
  spatialshot secret get gemini --reveal`,
}

var secretSetCmd = &cobra.Command{
	Use:   "set <provider> [value]",
	Short: "Encrypt and store a provider key",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSecretSet,
}

var secretGetCmd = &cobra.Command{
	Use:   "get <provider>",
	Short: "Show a stored provider key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSecretGet,
}

var secretListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers with a stored key",
	Args:  cobra.NoArgs,
	RunE:  runSecretList,
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove one provider key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSecretDelete,
}

var secretResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every stored key and the signed-in profile",
	Args:  cobra.NoArgs,
	RunE:  runSecretReset,
}

// Flags.
var (
	secretReveal bool
	secretYes    bool
)

func init() {
	secretGetCmd.Flags().BoolVar(&secretReveal, "reveal", false, "Print the full key instead of a masked one")
	secretResetCmd.Flags().BoolVarP(&secretYes, "yes", "y", false, "Do not ask for confirmation")

	secretCmd.AddCommand(secretSetCmd)
	secretCmd.AddCommand(secretGetCmd)
	secretCmd.AddCommand(secretListCmd)
	secretCmd.AddCommand(secretDeleteCmd)
	secretCmd.AddCommand(secretResetCmd)
	rootCmd.AddCommand(secretCmd)
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	if vaultService == nil {
		return errors.New("vault service not configured")
	}

	provider := args[0]
	if err := domain.ValidateProviderName(provider); err != nil {
		return err
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		cmd.Printf("%s key: ", provider)
		value = readSecret(cmd.InOrStdin())
		cmd.Println()
	}
	if value == "" {
		return errors.New("key must not be empty")
	}

	path, err := vaultService.Save(value, provider)
	if err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}

	cmd.Printf("%s %s key to %s\n", successStyle.Render("Saved"), provider, path)
	return nil
}

func runSecretGet(cmd *cobra.Command, args []string) error {
	if vaultService == nil {
		return errors.New("vault service not configured")
	}

	provider := args[0]
	if err := domain.ValidateProviderName(provider); err != nil {
		return err
	}

	value, ok := vaultService.Get(provider)
	if !ok {
		cmd.Printf("No %s key stored.\n", provider)
		return nil
	}

	if secretReveal {
		cmd.Println(value)
		return nil
	}
	cmd.Printf("%s: %s\n", provider, maskAPIKey(value))
	return nil
}

func runSecretList(cmd *cobra.Command, _ []string) error {
	if vaultService == nil {
		return errors.New("vault service not configured")
	}

	providers, err := vaultService.List()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(providers) == 0 {
		cmd.Println("No keys stored.")
		cmd.Println(mutedStyle.Render("Add one with: spatialshot secret set <provider>"))
		return nil
	}

	cmd.Println(titleStyle.Render("Stored keys:"))
	for _, provider := range providers {
		cmd.Printf("  %s\n", provider)
	}
	return nil
}

func runSecretDelete(cmd *cobra.Command, args []string) error {
	if vaultService == nil {
		return errors.New("vault service not configured")
	}

	provider := args[0]
	if err := vaultService.Delete(provider); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	cmd.Printf("Removed %s key.\n", provider)
	return nil
}

func runSecretReset(cmd *cobra.Command, _ []string) error {
	if vaultService == nil {
		return errors.New("vault service not configured")
	}

	if !secretYes {
		cmd.Print("Remove all stored keys and sign out? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer := strings.ToLower(readLine(reader))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := vaultService.Reset(); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}

	cmd.Println("All keys removed and signed out.")
	return nil
}

// readSecret reads a line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(bufio.NewReader(in))
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
