package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"plume/internal/log"
	"plume/pkg/lexer"
	"plume/pkg/parser"
)

const (
	traceIndent = "indent"
	traceLog    = "log"
)

var (
	checkInline string
	checkTrace  bool
	checkStyle  string
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a program",
	Long: `Runs the recursive-descent validator over a whole program. The first
error stops the run and is reported with its position and rule.

Examples:
  plume check main.pl
  plume check --trace main.pl
  plume check --trace --trace-style log --log-level debug main.pl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkInline, "eval", "e", "", "source given inline")
	checkCmd.Flags().BoolVarP(&checkTrace, "trace", "t", false, "trace rule entries and consumed tokens")
	checkCmd.Flags().StringVar(&checkStyle, "trace-style", traceIndent, "indent (stderr) or log (debug entries)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := readSource(checkInline, args)
	if err != nil {
		return err
	}

	tracer, err := newTracer(cmd.ErrOrStderr(), checkTrace || cfg.Trace.Enabled, checkStyle, cfg.Trace.Indent)
	if err != nil {
		return err
	}
	if err := parser.NewDescent(lexer.New(src), parser.WithTracer(tracer)).Analyze(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("ok"))
	return nil
}

func newTracer(w io.Writer, enabled bool, style string, indent int) (parser.Tracer, error) {
	if !enabled {
		return parser.NopTracer, nil
	}
	switch style {
	case traceIndent:
		return parser.NewIndentTracer(w, indent), nil
	case traceLog:
		return log.NewRuleTracer(logger), nil
	}
	return nil, fmt.Errorf("unknown trace style %q (want indent or log)", style)
}

