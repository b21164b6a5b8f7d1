package symcore

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// ============================================================
// JSON Serialization
// ============================================================
//
// Every node is an object with a "type" field naming its kind (see
// Kind.String) and kind-specific fields. Numbers carry their value as a
// string: "3", "-2/7", "nan", or a float with "float": true.

const (
	// maxMatrixEntries bounds rows*cols of a decoded matrix.
	maxMatrixEntries = 1 << 20
	// maxDummySeq bounds decoded dummy sequence numbers so the shared
	// counter never approaches overflow.
	maxDummySeq = 1 << 48
)

// ToJSON encodes e.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	if err != nil {
		return "", errors.Wrap(err, "symcore: encode")
	}
	return string(b), nil
}

// ToJSONMap returns the decoded-object form of e.
func ToJSONMap(e Expr) map[string]interface{} { return e.toJSON() }

// ParseJSON decodes an expression from its JSON text.
func ParseJSON(s string) (Expr, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, errors.Wrap(err, "symcore: decode")
	}
	return FromJSON(data)
}

func numJSON(n Number) map[string]interface{} {
	m := map[string]interface{}{"type": "num", "value": n.String()}
	if n.IsFloat() {
		m["value"] = strconv.FormatFloat(n.Float64(), 'g', -1, 64)
		m["float"] = true
	}
	return m
}

func argsJSON(args []Expr) []map[string]interface{} {
	out := make([]map[string]interface{}, len(args))
	for i, a := range args {
		out[i] = a.toJSON()
	}
	return out
}

// decoder reads the fields of one node object.
type decoder struct {
	typ  string
	data map[string]interface{}
}

func (d decoder) field(name string) (interface{}, error) {
	v, ok := d.data[name]
	if !ok {
		return nil, errors.Errorf("%s: missing %q", d.typ, name)
	}
	return v, nil
}

func (d decoder) str(name string) (string, error) {
	v, err := d.field(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.Errorf("%s: %q must be a non-empty string", d.typ, name)
	}
	return s, nil
}

func (d decoder) integer(name string) (int, error) {
	v, err := d.field(name)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(v)
	if !ok {
		return 0, errors.Errorf("%s: %q must be an integer", d.typ, name)
	}
	return n, nil
}

// asInt accepts decoded JSON numbers and the integer types of ToJSONMap.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), n == float64(int(n))
	case int:
		return n, true
	case uint64:
		return int(n), true
	}
	return 0, false
}

func (d decoder) expr(name string) (Expr, error) {
	v, err := d.field(name)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("%s: %q must be an object", d.typ, name)
	}
	e, err := FromJSON(m)
	return e, errors.Wrapf(err, "%s: %s", d.typ, name)
}

func (d decoder) exprs(name string) ([]Expr, error) {
	v, err := d.field(name)
	if err != nil {
		return nil, err
	}
	var raw []interface{}
	switch a := v.(type) {
	case []interface{}:
		raw = a
	case []map[string]interface{}:
		for _, m := range a {
			raw = append(raw, m)
		}
	default:
		return nil, errors.Errorf("%s: %q must be an array", d.typ, name)
	}
	out := make([]Expr, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("%s: %s[%d] must be an object", d.typ, name, i)
		}
		if out[i], err = FromJSON(m); err != nil {
			return nil, errors.Wrapf(err, "%s: %s[%d]", d.typ, name, i)
		}
	}
	return out, nil
}

func (d decoder) pair(a, b string) (Expr, Expr, error) {
	x, err := d.expr(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := d.expr(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// FromJSON decodes an expression object. The result is canonical: every node
// is rebuilt through its constructor.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}
	d := decoder{typ: typ, data: data}

	switch typ {
	case "num":
		return decodeNum(d)
	case "const":
		name, err := d.str("name")
		if err != nil {
			return nil, err
		}
		c, ok := constantNamed(name)
		if !ok {
			return nil, errors.Errorf("const: unknown constant %q", name)
		}
		return c, nil
	case "sym":
		return decodeSym(d)
	case "bool":
		v, ok := data["value"].(bool)
		if !ok {
			return nil, errors.New("bool: 'value' must be a boolean")
		}
		return BoolOf(v), nil
	case "add":
		terms, err := d.exprs("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil
	case "mul":
		factors, err := d.exprs("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil
	case "pow":
		b, e, err := d.pair("base", "exp")
		if err != nil {
			return nil, err
		}
		return PowOf(b, e), nil
	case "log":
		v, err := d.expr("value")
		if err != nil {
			return nil, err
		}
		base := Expr(E)
		if _, ok := data["base"]; ok {
			if base, err = d.expr("base"); err != nil {
				return nil, err
			}
		}
		return LogOf(v, base), nil
	case "func":
		name, err := d.str("name")
		if err != nil {
			return nil, err
		}
		arg, err := d.expr("arg")
		if err != nil {
			return nil, err
		}
		f, ok := FuncOf(name, arg)
		if !ok {
			return nil, errors.Errorf("func: unknown function %q", name)
		}
		return f, nil
	case "complex":
		name, err := d.str("part")
		if err != nil {
			return nil, err
		}
		part, ok := partNamed(name)
		if !ok {
			return nil, errors.Errorf("complex: unknown part %q", name)
		}
		arg, err := d.expr("arg")
		if err != nil {
			return nil, err
		}
		return complexOf(part, arg), nil
	case "undef":
		return decodeUndefined(d)
	case "matrix":
		rows, err := d.integer("rows")
		if err != nil {
			return nil, err
		}
		cols, err := d.integer("cols")
		if err != nil {
			return nil, err
		}
		entries, err := d.exprs("entries")
		if err != nil {
			return nil, err
		}
		if rows <= 0 || cols <= 0 || rows > maxMatrixEntries/cols {
			return nil, errors.Errorf("matrix: invalid shape %dx%d", rows, cols)
		}
		if len(entries) != rows*cols {
			return nil, errors.Errorf("matrix: %dx%d needs %d entries, got %d", rows, cols, rows*cols, len(entries))
		}
		return NewMatrix(rows, cols, entries...), nil
	case "rel":
		name, err := d.str("op")
		if err != nil {
			return nil, err
		}
		op, ok := relNamed(name)
		if !ok {
			return nil, errors.Errorf("rel: unknown operator %q", name)
		}
		l, r, err := d.pair("lhs", "rhs")
		if err != nil {
			return nil, err
		}
		return RelOf(op, l, r), nil
	case "logic":
		name, err := d.str("op")
		if err != nil {
			return nil, err
		}
		op, ok := logicNamed(name)
		if !ok {
			return nil, errors.Errorf("logic: unknown operator %q", name)
		}
		args, err := d.exprs("args")
		if err != nil {
			return nil, err
		}
		if op == LogicNot && len(args) != 1 {
			return nil, errors.Errorf("logic: not takes 1 argument, got %d", len(args))
		}
		return logicOf(op, args...), nil
	}
	return nil, errors.Errorf("unknown type %q", typ)
}

func decodeNum(d decoder) (Expr, error) {
	s, err := d.str("value")
	if err != nil {
		return nil, err
	}
	if isFloat, _ := d.data["float"].(bool); isFloat {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "num: invalid float %q", s)
		}
		return NFloat(f), nil
	}
	n, ok := ParseNumber(s)
	if !ok {
		return nil, errors.Errorf("num: invalid value %q", s)
	}
	return NumOf(n), nil
}

func decodeSym(d decoder) (Expr, error) {
	name, err := d.str("name")
	if err != nil {
		return nil, err
	}
	var opts []SymOption
	if _, ok := d.data["domain"]; ok {
		ds, err := d.str("domain")
		if err != nil {
			return nil, err
		}
		dom, ok := parseDomain(ds)
		if !ok {
			return nil, errors.Errorf("sym: unknown domain %q", ds)
		}
		opts = append(opts, WithDomain(dom))
	}
	if v, ok := d.data["value"].(map[string]interface{}); ok {
		n, err := decodeNum(decoder{typ: "num", data: v})
		if err != nil {
			return nil, errors.Wrap(err, "sym: value")
		}
		opts = append(opts, WithValue(n.(*Num).v))
	}
	if _, ok := d.data["deps"]; ok {
		deps, err := d.exprs("deps")
		if err != nil {
			return nil, err
		}
		vars := make([]*Sym, len(deps))
		for i, dep := range deps {
			s, ok := dep.(*Sym)
			if !ok {
				return nil, errors.Errorf("sym: deps[%d] must be a symbol", i)
			}
			vars[i] = s
		}
		opts = append(opts, DependsOn(vars...))
	}
	if _, ok := d.data["dummy"]; ok {
		seq, err := d.integer("dummy")
		if err != nil || seq <= 0 || seq > maxDummySeq {
			return nil, errors.Errorf("sym: 'dummy' must be a sequence number in [1, %d]", maxDummySeq)
		}
		return dummyWithSeq(name, uint64(seq), opts...), nil
	}
	return S(name, opts...), nil
}

func decodeUndefined(d decoder) (Expr, error) {
	name, err := d.str("name")
	if err != nil {
		return nil, err
	}
	args, err := d.exprs("args")
	if err != nil {
		return nil, err
	}
	orders := make([]int, len(args))
	if raw, ok := d.data["orders"].([]interface{}); ok {
		if len(raw) != len(args) {
			return nil, errors.Errorf("undef: %d orders for %d args", len(raw), len(args))
		}
		for i, o := range raw {
			n, ok := asInt(o)
			if !ok || n < 0 {
				return nil, errors.Errorf("undef: orders[%d] must be a non-negative integer", i)
			}
			orders[i] = n
		}
	}
	return &Undefined{name: name, args: args, orders: orders}, nil
}
