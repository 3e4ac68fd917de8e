package filter

import "fmt"

// Operator is the comparison applied by a single condition.
// All operators compare case-insensitively.
type Operator string

// Operator constants.
const (
	// Contains matches when the field contains the pattern as a substring.
	Contains Operator = "contains"
	// Equals matches when the field equals the pattern.
	Equals Operator = "equals"
	// NotContains matches when the field does not contain the pattern.
	// Unknown (null) fields do not match; pair it with IsNull to keep them.
	NotContains Operator = "not_contains"
	// IsNull matches when the field is unknown. It takes no pattern.
	IsNull Operator = "is_null"
)

// IsValid checks if the operator is one of the supported values.
func (o Operator) IsValid() bool {
	switch o {
	case Contains, Equals, NotContains, IsNull:
		return true
	}
	return false
}

// Condition is a single (field, operator, pattern) leaf.
type Condition struct {
	field   string
	op      Operator
	pattern string
}

// NewCondition validates and creates a Condition.
func NewCondition(field string, op Operator, pattern string) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if !op.IsValid() {
		return Condition{}, fmt.Errorf("invalid filter operator %q", op)
	}
	if op == IsNull {
		return Condition{field: field, op: op}, nil
	}
	if pattern == "" {
		return Condition{}, fmt.Errorf("pattern is required for field %q", field)
	}
	return Condition{field: field, op: op, pattern: pattern}, nil
}

// Match is a Contains condition. Callers guarantee non-empty arguments.
func Match(field, pattern string) Condition {
	return Condition{field: field, op: Contains, pattern: pattern}
}

// Exact is an Equals condition. Callers guarantee non-empty arguments.
func Exact(field, pattern string) Condition {
	return Condition{field: field, op: Equals, pattern: pattern}
}

// Exclude is a NotContains condition. Callers guarantee non-empty arguments.
func Exclude(field, pattern string) Condition {
	return Condition{field: field, op: NotContains, pattern: pattern}
}

// Unset is an IsNull condition.
func Unset(field string) Condition {
	return Condition{field: field, op: IsNull}
}

// Field returns the store column name.
func (c Condition) Field() string { return c.field }

// Operator returns the comparison operator.
func (c Condition) Operator() Operator { return c.op }

// Pattern returns the bare pattern, without any wire-level wildcards.
func (c Condition) Pattern() string { return c.pattern }

func (c Condition) String() string {
	if c.op == IsNull {
		return c.field + " " + string(c.op)
	}
	return c.field + " " + string(c.op) + " " + c.pattern
}

// Kind is the node type of an Expression.
type Kind int

// Kind constants.
const (
	KindEmpty Kind = iota
	KindLeaf
	KindAnd
	KindOr
)

// Expression is a boolean filter tree: conditions at the leaves, AND/OR groups inside.
// OR groups hold alternatives within one keyword category; AND joins categories.
// The zero value is the empty expression, which matches everything.
type Expression struct {
	kind     Kind
	cond     Condition
	children []Expression
}

// Leaf wraps a single condition.
func Leaf(c Condition) Expression {
	return Expression{kind: KindLeaf, cond: c}
}

// Leaves wraps each condition as a leaf expression.
func Leaves(conds ...Condition) []Expression {
	out := make([]Expression, len(conds))
	for i, c := range conds {
		out[i] = Leaf(c)
	}
	return out
}

// And joins children with AND. Empty children are dropped, nested AND groups are
// flattened and a single remaining child is returned as is.
func And(children ...Expression) Expression {
	return group(KindAnd, children)
}

// Or joins children with OR, normalized the same way as And.
func Or(children ...Expression) Expression {
	return group(KindOr, children)
}

func group(kind Kind, children []Expression) Expression {
	kept := make([]Expression, 0, len(children))
	for _, ch := range children {
		switch {
		case ch.kind == KindEmpty:
			continue
		case ch.kind == kind:
			kept = append(kept, ch.children...)
		default:
			kept = append(kept, ch)
		}
	}
	switch len(kept) {
	case 0:
		return Expression{}
	case 1:
		return kept[0]
	}
	return Expression{kind: kind, children: kept}
}

// Kind returns the node type.
func (e Expression) Kind() Kind { return e.kind }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return e.kind == KindEmpty }

// Condition returns the leaf condition. Only meaningful for KindLeaf.
func (e Expression) Condition() Condition { return e.cond }

// Children returns the group members. Nil for leaves and the empty expression.
func (e Expression) Children() []Expression { return e.children }

// Conditions returns every leaf condition, depth-first.
func (e Expression) Conditions() []Condition {
	var out []Condition
	e.walk(func(c Condition) { out = append(out, c) })
	return out
}

func (e Expression) walk(fn func(Condition)) {
	switch e.kind {
	case KindLeaf:
		fn(e.cond)
	case KindAnd, KindOr:
		for _, ch := range e.children {
			ch.walk(fn)
		}
	}
}
