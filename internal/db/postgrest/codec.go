package postgrest

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/kailas-cloud/carefinder/internal/domain/search/filter"
)

// Query parameters that are not filters.
var reservedParams = map[string]struct{}{
	"select": {},
	"limit":  {},
	"offset": {},
	"order":  {},
}

const (
	opIlike = "ilike"
	opEq    = "eq"
	opNot   = "not"
	opIs    = "is"
	null    = "null"
)

// Encode serializes expr into PostgREST horizontal-filter parameters:
// a lone leaf as field=op.value, a top-level group as or=(...) or and=(...).
// Wildcard characters are stripped from patterns.
func Encode(expr filter.Expression) url.Values {
	v := url.Values{}
	switch expr.Kind() {
	case filter.KindLeaf:
		c := expr.Condition()
		v.Set(c.Field(), operand(c, false))
	case filter.KindOr:
		v.Set("or", "("+terms(expr.Children())+")")
	case filter.KindAnd:
		v.Set("and", "("+terms(expr.Children())+")")
	}
	return v
}

func terms(children []filter.Expression) string {
	parts := make([]string, 0, len(children))
	for _, ch := range children {
		parts = append(parts, term(ch))
	}
	return strings.Join(parts, ",")
}

func term(e filter.Expression) string {
	switch e.Kind() {
	case filter.KindLeaf:
		c := e.Condition()
		return c.Field() + "." + operand(c, true)
	case filter.KindOr:
		return "or(" + terms(e.Children()) + ")"
	case filter.KindAnd:
		return "and(" + terms(e.Children()) + ")"
	}
	return ""
}

// operand renders "op.value". Inside logic trees values with reserved
// characters are double-quoted.
func operand(c filter.Condition, nested bool) string {
	if c.Operator() == filter.IsNull {
		return opIs + "." + null
	}
	p := stripWildcards(c.Pattern())
	var op, val string
	switch c.Operator() {
	case filter.Contains:
		op, val = opIlike, "*"+p+"*"
	case filter.NotContains:
		op, val = opNot+"."+opIlike, "*"+p+"*"
	default:
		op, val = opIlike, p
	}
	if nested {
		val = quote(val)
	}
	return op + "." + val
}

func stripWildcards(s string) string {
	return strings.NewReplacer("*", "", "%", "").Replace(s)
}

func quote(s string) string {
	if !needsQuoting(s) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

func needsQuoting(s string) bool {
	if s != strings.TrimSpace(s) {
		return true
	}
	return strings.ContainsAny(s, `,.:()"\`)
}

// Decode parses PostgREST filter parameters back into an expression.
// Separate filter parameters are AND-ed, as PostgREST does.
func Decode(v url.Values) (filter.Expression, error) {
	keys := make([]string, 0, len(v))
	for k := range v {
		if _, ok := reservedParams[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var parts []filter.Expression
	for _, k := range keys {
		for _, raw := range v[k] {
			var (
				e   filter.Expression
				err error
			)
			switch k {
			case "or", "and":
				e, err = parseGroup(k, raw)
			default:
				e, err = parseLeaf(k, raw, false)
			}
			if err != nil {
				return filter.Expression{}, fmt.Errorf("decode %s: %w", k, err)
			}
			parts = append(parts, e)
		}
	}
	return filter.And(parts...), nil
}

func parseGroup(kind, body string) (filter.Expression, error) {
	if len(body) < 2 || body[0] != '(' || body[len(body)-1] != ')' {
		return filter.Expression{}, fmt.Errorf("malformed %s group %q", kind, body)
	}
	items, err := splitTerms(body[1 : len(body)-1])
	if err != nil {
		return filter.Expression{}, err
	}
	children := make([]filter.Expression, 0, len(items))
	for _, item := range items {
		var e filter.Expression
		switch {
		case strings.HasPrefix(item, "or("):
			e, err = parseGroup("or", item[len("or"):])
		case strings.HasPrefix(item, "and("):
			e, err = parseGroup("and", item[len("and"):])
		default:
			field, rest, ok := strings.Cut(item, ".")
			if !ok {
				return filter.Expression{}, fmt.Errorf("malformed term %q", item)
			}
			e, err = parseLeaf(field, rest, true)
		}
		if err != nil {
			return filter.Expression{}, err
		}
		children = append(children, e)
	}
	if kind == "or" {
		return filter.Or(children...), nil
	}
	return filter.And(children...), nil
}

func parseLeaf(field, raw string, nested bool) (filter.Expression, error) {
	negated := false
	if rest, ok := strings.CutPrefix(raw, opNot+"."); ok {
		negated, raw = true, rest
	}
	op, val, ok := strings.Cut(raw, ".")
	if !ok {
		return filter.Expression{}, fmt.Errorf("malformed operand %q for field %q", raw, field)
	}
	if nested {
		val = unquote(val)
	}
	if op == opIs {
		if negated || val != null {
			return filter.Expression{}, fmt.Errorf("unsupported is-filter %q for field %q", raw, field)
		}
		return filter.Leaf(filter.Unset(field)), nil
	}

	wildcarded := len(val) >= 2 && strings.HasPrefix(val, "*") && strings.HasSuffix(val, "*")
	var fop filter.Operator
	switch {
	case op == opIlike && negated && wildcarded:
		fop = filter.NotContains
	case op == opIlike && !negated && wildcarded:
		fop = filter.Contains
	case (op == opIlike || op == opEq) && !negated && !wildcarded:
		fop = filter.Equals
	default:
		return filter.Expression{}, fmt.Errorf("unsupported operator %q (negated=%t) for field %q", op, negated, field)
	}

	c, err := filter.NewCondition(field, fop, stripWildcards(val))
	if err != nil {
		return filter.Expression{}, err
	}
	return filter.Leaf(c), nil
}

// splitTerms splits a logic-tree body on top-level commas, honouring
// parentheses and double-quoted values.
func splitTerms(s string) ([]string, error) {
	var (
		out     []string
		depth   int
		inQuote bool
		start   int
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote && ch == '\\':
			i++
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", s)
			}
		case ch == ',' && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 || inQuote {
		return nil, fmt.Errorf("unterminated group in %q", s)
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out, nil
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
