package lexer

import "sync"

// Lexer pool for reusing scan buffers across short-lived requests
var lexerPool = sync.Pool{
	New: func() interface{} {
		return &Lexer{buffer: make([]rune, 0, 32)}
	},
}

// Get retrieves a lexer from the pool, reset to scan input
func Get(input string) *Lexer {
	l := lexerPool.Get().(*Lexer)
	l.Reset(input)
	return l
}

// Put returns a lexer to the pool after use
func Put(l *Lexer) {
	l.Reset("")
	lexerPool.Put(l)
}
