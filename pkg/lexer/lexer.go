package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"plume/pkg/token"
)

var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrIntegerOverflow    = errors.New("integer literal out of int32 range")
)

// Error is a lexical error. Kind is one of the Err* sentinels.
type Error struct {
	Kind   error
	Text   string
	Offset int
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %v: %q", e.Line, e.Column, e.Kind, e.Text)
}

func (e *Error) Unwrap() error { return e.Kind }

type state int

const (
	stateStart state = iota
	stateIdentifier
	stateNumber
	stateString
	stateDash // saw '-', deciding between MINUS and ARROW
	stateEnd
)

var singles = map[rune]token.TokenType{
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'.': token.DOT,
	',': token.COMMA,
	':': token.COLON,
	';': token.SEMICOLON,
	'+': token.PLUS,
	'*': token.ASTERISK,
	'/': token.SLASH,
	'=': token.ASSIGN,
	'<': token.LT,
	'>': token.GT,
}

type Lexer struct {
	input  []rune
	pos    int // current position in input (points to next unread char)
	line   int
	column int
	state  state
	buffer []rune // text of the token being built, empty between tokens

	// start of the token being built
	startOffset int
	startLine   int
	startColumn int

	current   token.Token
	lookahead *token.Token
	err       error
}

func New(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// Reset replaces the input and rewinds every piece of scanner state.
func (l *Lexer) Reset(input string) {
	l.input = []rune(input)
	l.pos = 0
	l.line = 1
	l.column = 1
	l.state = stateStart
	l.buffer = l.buffer[:0]
	l.current = token.Token{Type: token.EOI, Line: 1, Column: 1}
	l.lookahead = nil
	l.err = nil
}

// Advance consumes and returns the next token. Once the input is exhausted
// it keeps returning EOI. A lexical error is returned again by every later call.
func (l *Lexer) Advance() (token.Token, error) {
	if l.lookahead != nil {
		l.current = *l.lookahead
		l.lookahead = nil
		return l.current, nil
	}
	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	l.current = tok
	return tok, nil
}

// Current returns the most recently produced token, EOI before the first
// Advance.
func (l *Lexer) Current() token.Token {
	return l.current
}

// Peek returns the token after Current without consuming it.
func (l *Lexer) Peek() (token.Token, error) {
	if l.lookahead == nil {
		tok, err := l.scan()
		if err != nil {
			return token.Token{}, err
		}
		l.lookahead = &tok
	}
	return *l.lookahead, nil
}

// Pos is the cursor position in characters. After a Peek it points past the
// peeked token.
func (l *Lexer) Pos() int {
	return l.pos
}

func (l *Lexer) scan() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}

	for {
		if l.pos >= len(l.input) {
			return l.endOfInput()
		}
		ch := l.input[l.pos]

		switch l.state {
		case stateStart:
			if tt, ok := singles[ch]; ok {
				l.mark()
				l.readChar()
				return l.emit(tt, string(ch)), nil
			}
			switch {
			case ch == '"':
				l.mark()
				l.readChar()
				l.state = stateString
			case ch == '-':
				l.mark()
				l.buffer = append(l.buffer, ch)
				l.readChar()
				l.state = stateDash
			case isLetter(ch):
				l.mark()
				l.buffer = append(l.buffer, ch)
				l.readChar()
				l.state = stateIdentifier
			case isDigit(ch):
				l.mark()
				l.buffer = append(l.buffer, ch)
				l.readChar()
				l.state = stateNumber
			default:
				// whitespace and characters outside the alphabet
				l.readChar()
			}

		case stateIdentifier:
			if isLetter(ch) || isDigit(ch) {
				l.buffer = append(l.buffer, ch)
				l.readChar()
				continue
			}
			return l.finishIdentifier(), nil

		case stateNumber:
			if isDigit(ch) {
				l.buffer = append(l.buffer, ch)
				l.readChar()
				continue
			}
			return l.finishNumber()

		case stateString:
			if ch == '"' {
				l.readChar()
				return l.finishString(), nil
			}
			l.buffer = append(l.buffer, ch)
			l.readChar()

		case stateDash:
			if ch == '>' {
				l.readChar()
				return l.emit(token.ARROW, "->"), nil
			}
			// the character after '-' is left for the next call
			return l.emit(token.MINUS, "-"), nil

		case stateEnd:
			return l.eoi(), nil
		}
	}
}

func (l *Lexer) endOfInput() (token.Token, error) {
	switch l.state {
	case stateIdentifier:
		return l.finishIdentifier(), nil
	case stateNumber:
		return l.finishNumber()
	case stateDash:
		return l.emit(token.MINUS, "-"), nil
	case stateString:
		return token.Token{}, l.fail(ErrUnterminatedString)
	}
	l.state = stateEnd
	return l.eoi(), nil
}

func (l *Lexer) finishIdentifier() token.Token {
	word := string(l.buffer)
	return l.emit(token.LookupIdent(word), word)
}

func (l *Lexer) finishNumber() (token.Token, error) {
	text := string(l.buffer)
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return token.Token{}, l.fail(ErrIntegerOverflow)
	}
	tok := l.emit(token.INT32_LIT, text)
	tok.Int = int32(n)
	return tok, nil
}

func (l *Lexer) finishString() token.Token {
	return l.emit(token.STRING_LIT, string(l.buffer))
}

// emit finalizes the token being built and returns to the start state.
func (l *Lexer) emit(tt token.TokenType, literal string) token.Token {
	l.buffer = l.buffer[:0]
	l.state = stateStart
	return token.Token{
		Type:    tt,
		Literal: literal,
		Offset:  l.startOffset,
		Line:    l.startLine,
		Column:  l.startColumn,
	}
}

func (l *Lexer) eoi() token.Token {
	return token.Token{Type: token.EOI, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) fail(kind error) error {
	l.err = &Error{
		Kind:   kind,
		Text:   string(l.buffer),
		Offset: l.startOffset,
		Line:   l.startLine,
		Column: l.startColumn,
	}
	l.buffer = l.buffer[:0]
	l.state = stateEnd
	return l.err
}

func (l *Lexer) mark() {
	l.startOffset = l.pos
	l.startLine = l.line
	l.startColumn = l.column
}

func (l *Lexer) readChar() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize scans the whole input, returning every token up to and including EOI.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.Advance()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Is(token.EOI) {
			return toks, nil
		}
	}
}
