// internal/filter/expr.go
package filter

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"hpigo-core/predict"
)

var (
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// env exposes one result row to CEL: host, pathogen, score.
func env() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("host", cel.StringType),
			cel.Variable("pathogen", cel.StringType),
			cel.Variable("score", cel.DoubleType),
		)
	})
	return celEnv, celEnvErr
}

// Expr is a compiled CEL predicate applied to kept interactions after the
// similarity threshold, e.g.
//
//	score > 0.8 && host.startsWith("AT")
//
// Compilation errors are configuration errors; evaluation errors drop the
// row (the caller decides whether to warn).
type Expr struct {
	prg cel.Program
}

// Compile parses and type-checks expr. The expression must evaluate to a
// boolean.
func Compile(expr string) (*Expr, error) {
	e, err := env()
	if err != nil {
		return nil, err
	}
	ast, iss := e.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("filter expression: %w", iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter expression must be boolean, got %s", ast.OutputType())
	}
	prg, err := e.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter expression: %w", err)
	}
	return &Expr{prg: prg}, nil
}

// Keep evaluates the predicate for one interaction.
func (f *Expr) Keep(it predict.Interaction) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"host":     it.Host,
		"pathogen": it.Pathogen,
		"score":    it.Score,
	})
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter expression returned %T, want bool", out.Value())
	}
	return b, nil
}
