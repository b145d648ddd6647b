// internal/cli/key.go
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezinulo/pricefinder/internal/credential"
	"github.com/ezinulo/pricefinder/internal/ui"
)

// keyCmd groups the access key management commands
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the search API access key",
	Long: `Stores the access key for the "api" source in the OS keyring (or a
file under the user config directory when no keyring is available). The
` + credential.EnvAccessKey + ` environment variable overrides the stored key.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the access key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprint(os.Stderr, "Access key: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			key = strings.TrimSpace(line)
		}

		if err := credential.Save(key); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Access key stored"))
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored access key (masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := credential.Load()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), credential.Mask(key))
		return nil
	},
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored access key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Delete(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Access key removed"))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyShowCmd, keyDeleteCmd)
	rootCmd.AddCommand(keyCmd)
}
