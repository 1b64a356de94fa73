package benchmarks

import (
	"testing"

	"plume/pkg/lexer"
	"plume/pkg/parser"
)

// Fresh lexer per run versus one lexer rewound with Reset, and the pool
// the playground draws from.
func BenchmarkDescentFreshLexer(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if err := parser.NewDescent(lexer.New(function)).Analyze(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDescentResetLexer(b *testing.B) {
	l := lexer.New(function)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Reset(function)
		if err := parser.NewDescent(l).Analyze(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDescentPooledLexer(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l := lexer.Get(function)
			err := parser.NewDescent(l).Analyze()
			lexer.Put(l)
			if err != nil {
				b.Error(err)
				return
			}
		}
	})
}
