package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"plume/pkg/token"
	"plume/pkg/tree"
)

const (
	formatText  = "text"
	formatSexpr = "sexpr"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

func renderTokens(w io.Writer, toks []token.Token, format string) error {
	switch format {
	case formatText:
		for _, tok := range toks {
			fmt.Fprintf(w, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
		}
		return nil
	case formatYAML, formatJSON:
		docs := make([]token.Document, 0, len(toks))
		for _, tok := range toks {
			docs = append(docs, tok.Document())
		}
		return encode(w, docs, format)
	}
	return fmt.Errorf("unknown format %q for tokens (want text, yaml or json)", format)
}

func renderTree(w io.Writer, root *tree.Node, format string) error {
	switch format {
	case formatText:
		return root.Print(w)
	case formatSexpr:
		_, err := fmt.Fprintln(w, root.String())
		return err
	case formatYAML, formatJSON:
		return encode(w, root, format)
	}
	return fmt.Errorf("unknown format %q for trees (want text, sexpr, yaml or json)", format)
}

func encode(w io.Writer, v interface{}, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
