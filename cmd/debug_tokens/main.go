package main

import (
	"fmt"
	"os"

	"plume/pkg/lexer"
	"plume/pkg/token"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/debug_tokens '<code>'")
		os.Exit(1)
	}

	input := os.Args[1]
	l := lexer.New(input)

	fmt.Printf("Input: %s\n\n", input)
	fmt.Println("Tokens:")
	fmt.Println("-------")

	for {
		tok, err := l.Advance()
		if err != nil {
			fmt.Printf("lexical error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%-12s %-20s (offset %d, line %d, col %d, pos %d)\n",
			tok.Type, fmt.Sprintf("'%s'", tok.Literal), tok.Offset, tok.Line, tok.Column, l.Pos())

		if tok.Is(token.EOI) {
			break
		}
	}
}
