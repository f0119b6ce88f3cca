// Package filter translates AIP-160 list filters into SurrealQL conditions.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ErrInvalidFilter wraps every parse and translation failure.
var ErrInvalidFilter = errors.New("invalid filter")

// FieldType describes a supported filter field type.
type FieldType string

const (
	FieldString     FieldType = "string"
	FieldInt        FieldType = "int"
	FieldFloat      FieldType = "float"
	FieldBool       FieldType = "bool"
	FieldTimestamp  FieldType = "timestamp"
	FieldStringList FieldType = "string_list"
)

// Fields defines filterable fields and their types. Field names are used
// verbatim as column names.
type Fields map[string]FieldType

// Condition is a SurrealQL WHERE fragment with named parameters.
type Condition struct {
	Clause string
	Vars   map[string]interface{}
}

// IsEmpty reports whether the condition filters nothing.
func (c Condition) IsEmpty() bool {
	return c.Clause == ""
}

// Parse parses an AIP-160 filter expression for the provided fields and
// translates it. Parameter names are prefixed with "f" so they do not collide
// with the caller's own variables. An empty filter yields an empty condition.
func Parse(filterStr string, fields Fields) (Condition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return Condition{}, nil
	}

	decls, err := declarations(fields)
	if err != nil {
		return Condition{}, err
	}

	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return Condition{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	t := &translator{fields: fields, vars: make(map[string]interface{})}
	clause, err := t.expr(parsed.CheckedExpr.GetExpr())
	if err != nil {
		return Condition{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return Condition{Clause: clause, Vars: t.vars}, nil
}

func declarations(fields Fields) (*filtering.Declarations, error) {
	decls := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("true", filtering.TypeBool),
		filtering.DeclareIdent("false", filtering.TypeBool),
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch fields[name] {
		case FieldString:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeString))
		case FieldInt:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeInt))
		case FieldFloat:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeFloat))
		case FieldBool:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeBool))
		case FieldTimestamp:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeTimestamp))
		case FieldStringList:
			decls = append(decls, filtering.DeclareIdent(name, filtering.TypeList(filtering.TypeString)))
		default:
			return nil, fmt.Errorf("%w: unsupported field type for %s", ErrInvalidFilter, name)
		}
	}

	return filtering.NewDeclarations(decls...)
}

type translator struct {
	fields Fields
	vars   map[string]interface{}
}

func (t *translator) expr(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		// A bare boolean field ("is_active") is shorthand for field = true.
		if name, err := t.fieldName(e); err == nil && t.fields[name] == FieldBool {
			return name + " = true", nil
		}
		return "", fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}

	switch call.CallExpr.Function {
	case filtering.FunctionAnd, filtering.FunctionFuzzyAnd:
		return t.join(call.CallExpr.Args, "AND")
	case filtering.FunctionOr:
		return t.join(call.CallExpr.Args, "OR")
	case filtering.FunctionNot:
		if len(call.CallExpr.Args) != 1 {
			return "", fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := t.expr(call.CallExpr.Args[0])
		if err != nil {
			return "", err
		}
		return "!(" + inner + ")", nil
	case filtering.FunctionEquals:
		return t.comparison(call.CallExpr.Args, "=")
	case filtering.FunctionNotEquals:
		return t.comparison(call.CallExpr.Args, "!=")
	case filtering.FunctionLessThan:
		return t.comparison(call.CallExpr.Args, "<")
	case filtering.FunctionLessEquals:
		return t.comparison(call.CallExpr.Args, "<=")
	case filtering.FunctionGreaterThan:
		return t.comparison(call.CallExpr.Args, ">")
	case filtering.FunctionGreaterEquals:
		return t.comparison(call.CallExpr.Args, ">=")
	case filtering.FunctionHas:
		return t.comparison(call.CallExpr.Args, "CONTAINS")
	default:
		return "", fmt.Errorf("unsupported function: %s", call.CallExpr.Function)
	}
}

func (t *translator) join(args []*expr.Expr, op string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%s requires at least 2 arguments", op)
	}

	parts := make([]string, 0, len(args))
	for _, arg := range args {
		part, err := t.expr(arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")", nil
}

func (t *translator) comparison(args []*expr.Expr, op string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := t.fieldName(args[0])
	if err != nil {
		return "", err
	}
	kind, ok := t.fields[field]
	if !ok {
		return "", fmt.Errorf("unknown field: %s", field)
	}

	value, err := extractValue(args[1])
	if err != nil {
		return "", err
	}

	param := fmt.Sprintf("f%d", len(t.vars))
	t.vars[param] = value

	placeholder := "$" + param
	if kind == FieldTimestamp {
		placeholder = "<datetime> " + placeholder
	}
	return fmt.Sprintf("%s %s %s", field, op, placeholder), nil
}

func (t *translator) fieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		name := kind.IdentExpr.GetName()
		if _, ok := t.fields[name]; !ok {
			return "", fmt.Errorf("unknown field: %s", name)
		}
		return name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (interface{}, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_IdentExpr:
		switch kind.IdentExpr.GetName() {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("expected constant, got identifier %s", kind.IdentExpr.GetName())
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == filtering.FunctionTimestamp && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (interface{}, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func extractTimestampValue(e *expr.Expr) (string, error) {
	c, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("timestamp argument must be a constant string")
	}
	s, ok := c.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return "", fmt.Errorf("timestamp argument must be a string")
	}

	ts, err := time.Parse(time.RFC3339Nano, s.StringValue)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp format: %s", s.StringValue)
	}
	return ts.UTC().Format(time.RFC3339Nano), nil
}
