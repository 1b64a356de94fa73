package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"plume/internal/playground"
	"plume/pkg/version"
)

const prompt = ">> "

var replMode string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt",
	Long: `Reads one source per line and runs it through the selected front-end.

Meta commands:
  :mode tokens|check|expr   switch front-end
  :quit                     leave`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd.InOrStdin(), cmd.OutOrStdout(), replMode, cfg.Playground.MaxSourceBytes)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replMode, "mode", "m", playground.ModeExpr, "tokens, check or expr")
}

func runREPL(in io.Reader, out io.Writer, mode string, maxSource int) error {
	if !validMode(mode) {
		return fmt.Errorf("unknown mode %q (want tokens, check or expr)", mode)
	}
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, headerStyle.Render("plume "+version.Version))
	fmt.Fprintln(out, mutedStyle.Render("mode "+mode+", :mode to switch, :quit to leave"))

	for n := 1; ; n++ {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case strings.HasPrefix(line, ":mode"):
			next := strings.TrimSpace(strings.TrimPrefix(line, ":mode"))
			if !validMode(next) {
				fmt.Fprintln(out, errorStyle.Render("unknown mode "+next))
				continue
			}
			mode = next
			fmt.Fprintln(out, mutedStyle.Render("mode "+mode))
			continue
		}

		resp := playground.Analyze(playground.Request{ID: fmt.Sprint(n), Mode: mode, Source: line}, maxSource)
		printResponse(out, resp)
	}
}

func validMode(mode string) bool {
	switch mode {
	case playground.ModeTokens, playground.ModeCheck, playground.ModeExpr:
		return true
	}
	return false
}

func printResponse(out io.Writer, resp playground.Response) {
	for _, tok := range resp.Tokens {
		if tok.Literal != "" {
			fmt.Fprintf(out, "%s(%s) ", tok.Type, tok.Literal)
		} else {
			fmt.Fprintf(out, "%s ", tok.Type)
		}
	}
	if len(resp.Tokens) > 0 {
		fmt.Fprintln(out)
	}

	switch {
	case !resp.OK:
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(resp.ErrorKind+":"), resp.Error)
	case resp.Tree != nil:
		fmt.Fprintln(out, resp.Tree.String())
	case len(resp.Tokens) == 0:
		fmt.Fprintln(out, successStyle.Render("ok"))
	}
}
