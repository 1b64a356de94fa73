package parser

import (
	"fmt"
	"io"
	"strings"

	"plume/pkg/token"
)

// Tracer observes a parse. It is told when a grammar rule starts and ends and
// whenever a token is consumed. Tracing never changes what is accepted.
type Tracer interface {
	Enter(rule string)
	Exit(rule string)
	Consume(tok token.Token)
}

type nopTracer struct{}

func (nopTracer) Enter(string)        {}
func (nopTracer) Exit(string)         {}
func (nopTracer) Consume(token.Token) {}

var NopTracer Tracer = nopTracer{}

const DefaultIndent = 2

// IndentTracer prints rule entries and consumed tokens, nested by depth:
//
//	function()
//	  expect(FUNC)
//	  expect(IDENT)
//	  parameter-list()
type IndentTracer struct {
	w     io.Writer
	width int
	depth int
}

func NewIndentTracer(w io.Writer, width int) *IndentTracer {
	if width <= 0 {
		width = DefaultIndent
	}
	return &IndentTracer{w: w, width: width}
}

func (t *IndentTracer) Enter(rule string) {
	fmt.Fprintf(t.w, "%s%s()\n", t.indent(), rule)
	t.depth++
}

func (t *IndentTracer) Exit(string) {
	if t.depth > 0 {
		t.depth--
	}
}

func (t *IndentTracer) Consume(tok token.Token) {
	fmt.Fprintf(t.w, "%sexpect(%s)\n", t.indent(), tok)
}

func (t *IndentTracer) indent() string {
	return strings.Repeat(" ", t.depth*t.width)
}

type config struct {
	tracer Tracer
	powers BindingPowers
}

type Option func(*config)

// WithTracer installs an observer for rule entry and exit.
func WithTracer(t Tracer) Option {
	return func(c *config) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithBindingPowers replaces the Pratt binding-power table. The descent
// parser ignores it.
func WithBindingPowers(bp BindingPowers) Option {
	return func(c *config) {
		if bp != nil {
			c.powers = bp
		}
	}
}

func newConfig(opts []Option) config {
	c := config{tracer: NopTracer, powers: DefaultBindingPowers()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
