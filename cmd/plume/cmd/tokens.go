package cmd

import (
	"github.com/spf13/cobra"

	"plume/internal/log"
	"plume/pkg/lexer"
)

var (
	tokensInline string
	tokensFormat string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a source",
	Long: `Scans a source with the lexer and prints one token per line.

Examples:
  plume tokens main.pl
  plume tokens -e 'let x : int32 = 35;'
  plume tokens --format yaml main.pl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensInline, "eval", "e", "", "source given inline")
	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", formatText, "text, yaml or json")
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(tokensInline, args)
	if err != nil {
		return err
	}
	toks, lexErr := lexer.Tokenize(src)
	logger.Debug("scanned", log.Fields{"tokens": len(toks)})

	// print what was scanned before the error
	if err := renderTokens(cmd.OutOrStdout(), toks, tokensFormat); err != nil {
		return err
	}
	return lexErr
}
