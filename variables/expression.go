package variables

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprEnv is the evaluation environment for expression validators.
type exprEnv struct {
	Value any `expr:"value"`
}

// ExpressionValidator compiles a boolean expression over `value` into a
// ValidatorFunc, e.g. `value > 0 && value < 65536` or
// `value matches "^[a-z-]+$"`.
func ExpressionValidator(source string) (ValidatorFunc, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", source, err)
	}
	return func(value any) error {
		return runExprValidator(program, source, value)
	}, nil
}

func runExprValidator(program *vm.Program, source string, value any) error {
	out, err := expr.Run(program, exprEnv{Value: value})
	if err != nil {
		return fmt.Errorf("expression %q: %w", source, err)
	}
	if ok, _ := out.(bool); !ok {
		return fmt.Errorf("value %v rejected by expression %q", value, source)
	}
	return nil
}

// ValidateExpr appends an expression validator to the definition. The
// expression must compile; ValidateExpr panics otherwise, so call it
// only with literal expressions at registry-setup time.
func (d Definition) ValidateExpr(source string) Definition {
	fn, err := ExpressionValidator(source)
	if err != nil {
		panic(err)
	}
	return d.Validate(fn)
}
