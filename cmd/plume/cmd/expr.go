package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"plume/internal/log"
	"plume/pkg/lexer"
	"plume/pkg/parser"
	"plume/pkg/token"
)

var (
	exprInline string
	exprFormat string
	exprPowers []string
)

var exprCmd = &cobra.Command{
	Use:   "expr [file]",
	Short: "Parse an expression into a tree",
	Long: `Parses an expression with the Pratt parser and prints the tree.

Binding powers come from a table. --bp adds or replaces entries as
KIND=LEFT,RIGHT where KIND is a token kind such as IDENT, +, = or INT32_LIT.

Examples:
  plume expr -e 'a = b + c'
  plume expr --format sexpr -e 'b + c + d'
  plume expr --bp '+=2,1' -e 'b + c + d'
  plume expr --bp '-=2,3' -e 'x - 1'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpr,
}

func init() {
	rootCmd.AddCommand(exprCmd)

	exprCmd.Flags().StringVarP(&exprInline, "eval", "e", "", "source given inline")
	exprCmd.Flags().StringVarP(&exprFormat, "format", "f", formatText, "text, sexpr, yaml or json")
	exprCmd.Flags().StringArrayVar(&exprPowers, "bp", nil, "binding power override KIND=LEFT,RIGHT (repeatable)")
}

func runExpr(cmd *cobra.Command, args []string) error {
	src, err := readSource(exprInline, args)
	if err != nil {
		return err
	}
	powers, err := parseBindingPowers(exprPowers)
	if err != nil {
		return err
	}

	tracer, err := newTracer(cmd.ErrOrStderr(), cfg.Trace.Enabled, traceLog, cfg.Trace.Indent)
	if err != nil {
		return err
	}
	root, err := parser.NewPratt(lexer.New(src), parser.WithBindingPowers(powers), parser.WithTracer(tracer)).Analyze()
	if err != nil {
		return err
	}
	logger.Debug("parsed expression", log.Fields{"tree": root.String()})
	return renderTree(cmd.OutOrStdout(), root, exprFormat)
}

// parseBindingPowers layers KIND=LEFT,RIGHT overrides on the default table.
// The separator is the last '=' so that "==2,1" names the = kind.
func parseBindingPowers(entries []string) (parser.BindingPowers, error) {
	powers := parser.DefaultBindingPowers()
	for _, entry := range entries {
		i := strings.LastIndex(entry, "=")
		if i <= 0 {
			return nil, fmt.Errorf("binding power %q: want KIND=LEFT,RIGHT", entry)
		}
		kind, pair := entry[:i], entry[i+1:]

		left, right, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("binding power %q: want KIND=LEFT,RIGHT", entry)
		}
		l, err := strconv.Atoi(strings.TrimSpace(left))
		if err != nil {
			return nil, fmt.Errorf("binding power %q: %w", entry, err)
		}
		r, err := strconv.Atoi(strings.TrimSpace(right))
		if err != nil {
			return nil, fmt.Errorf("binding power %q: %w", entry, err)
		}
		powers[token.TokenType(strings.TrimSpace(kind))] = parser.BindingPower{Left: l, Right: r}
	}
	return powers, nil
}
