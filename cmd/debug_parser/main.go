package main

import (
	"fmt"
	"os"

	"plume/pkg/lexer"
	"plume/pkg/parser"
)

// Runs both parsers on the same input: the validator with an indent trace,
// then the Pratt parser, printing its tree.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/debug_parser '<code>'")
		os.Exit(1)
	}
	input := os.Args[1]

	fmt.Println("Descent trace:")
	tracer := parser.NewIndentTracer(os.Stdout, parser.DefaultIndent)
	if err := parser.NewDescent(lexer.New(input), parser.WithTracer(tracer)).Analyze(); err != nil {
		fmt.Printf("  %v\n", err)
	}
	fmt.Println()

	root, err := parser.NewPratt(lexer.New(input)).Analyze()
	if err != nil {
		fmt.Printf("Pratt error:\n  %v\n", err)
		return
	}
	fmt.Println("Tree:")
	root.Print(os.Stdout)
}
