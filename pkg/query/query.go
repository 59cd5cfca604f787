// Package query evaluates expr-lang expressions against a settings document.
package query

import (
	"errors"
	"fmt"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/mattsolo1/grove-tagstore/pkg/settings"
	"github.com/mattsolo1/grove-tagstore/pkg/value"
)

// TagsVar names the environment entry holding every tag, for tag names that
// are not valid identifiers.
const TagsVar = "tags"

var errEmptyExpression = errors.New("expression must not be empty")

// EvalError wraps a compile or run failure with the offending expression.
type EvalError struct {
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %q: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Evaluator compiles expressions once and runs them against documents. It is
// safe for concurrent use.
type Evaluator struct {
	mu       sync.Mutex
	programs map[string]*exprvm.Program
}

func NewEvaluator() *Evaluator {
	return &Evaluator{programs: map[string]*exprvm.Program{}}
}

// Evaluate runs expression with every tag of doc bound by name. The result
// is converted back into a Value.
func (e *Evaluator) Evaluate(doc *settings.Document, expression string) (value.Value, error) {
	if expression == "" {
		return value.Null(), &EvalError{Expr: expression, Err: errEmptyExpression}
	}

	program, err := e.loadOrCompile(expression)
	if err != nil {
		return value.Null(), err
	}

	result, err := exprlang.Run(program, Environment(doc))
	if err != nil {
		return value.Null(), &EvalError{Expr: expression, Err: err}
	}
	return value.Of(result), nil
}

func (e *Evaluator) loadOrCompile(expression string) (*exprvm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if program, ok := e.programs[expression]; ok {
		return program, nil
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &EvalError{Expr: expression, Err: err}
	}
	e.programs[expression] = program
	return program, nil
}

// Environment projects doc onto the variables an expression sees.
func Environment(doc *settings.Document) map[string]any {
	all := make(map[string]any, doc.Len())
	env := make(map[string]any, doc.Len()+1)
	for t, v := range doc.Entries() {
		native := value.ToNative(v)
		all[t.Name()] = native
		env[t.Name()] = native
	}
	env[TagsVar] = all
	return env
}
