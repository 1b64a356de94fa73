package log

import "plume/pkg/token"

// RuleTracer routes parser rule entries and consumed tokens to a logger at
// debug level. It satisfies parser.Tracer.
type RuleTracer struct {
	logger *Logger
	depth  int
}

func NewRuleTracer(logger *Logger) *RuleTracer {
	return &RuleTracer{logger: logger.WithField("component", "parser")}
}

func (t *RuleTracer) Enter(rule string) {
	t.logger.Debug("enter rule", Fields{"rule": rule, "depth": t.depth})
	t.depth++
}

func (t *RuleTracer) Exit(rule string) {
	if t.depth > 0 {
		t.depth--
	}
	t.logger.Debug("exit rule", Fields{"rule": rule, "depth": t.depth})
}

func (t *RuleTracer) Consume(tok token.Token) {
	t.logger.Debug("consume", Fields{"token": tok.String(), "line": tok.Line, "column": tok.Column})
}
