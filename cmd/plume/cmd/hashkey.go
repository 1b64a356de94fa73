package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plume/internal/playground"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key [key]",
	Short: "Hash a playground access key",
	Long: `Prints the bcrypt hash to store as playground.key_hash. The key is read
from the argument or from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) > 0 {
			key = args[0]
		} else {
			var err error
			if key, err = readSource("", nil); err != nil {
				return err
			}
		}
		key = strings.TrimRight(key, "\r\n")
		if key == "" {
			return errors.New("empty key")
		}

		hash, err := playground.HashKey(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}
