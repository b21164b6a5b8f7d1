package symcore

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// JSON tool interface
// ============================================================

// ToolRequest names a tool and its parameters. Expression parameters are
// objects in the ToJSON encoding.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries the result of a tool call, or an error message.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type toolParam struct {
	name, typ string
	required  bool
}

type toolSpec struct {
	name, description string
	params            []toolParam
}

var (
	exprParam = toolParam{"expr", "object", true}
	varParam  = toolParam{"var", "string", true}
)

var toolSpecs = []toolSpec{
	{"simplify", "Rewrite to the smallest equivalent form found", []toolParam{exprParam, {"passes", "integer", false}}},
	{"expand", "Distribute products and integer powers of sums", []toolParam{exprParam}},
	{"diff", "n-th derivative (default 1), simplified", []toolParam{exprParam, varParam, {"n", "integer", false}}},
	{"subst", "Replace var by with", []toolParam{exprParam, varParam, {"with", "object", true}}},
	{"eval", "Exact or float value of a closed expression", []toolParam{exprParam}},
	{"nprec", "Decimal value to the given significant digits (default 30)", []toolParam{exprParam, {"digits", "integer", false}, {"rounding", "string", false}}},
	{"gcd", "Polynomial gcd over the rationals", []toolParam{{"a", "object", true}, {"b", "object", true}, {"vars", "array", false}}},
	{"solve", "Roots of a polynomial equation of degree at most two", []toolParam{exprParam, varParam}},
	{"taylor", "Taylor polynomial around at (default order 5)", []toolParam{exprParam, varParam, {"at", "object", true}, {"order", "integer", false}}},
	{"limit", "Limit as var approaches at", []toolParam{exprParam, varParam, {"at", "object", true}}},
	{"latex", "LaTeX rendering", []toolParam{exprParam}},
	{"free", "Sorted names of the free variables", []toolParam{exprParam}},
}

// Tools lists the tool names HandleToolCall accepts.
var Tools = func() []string {
	names := make([]string, len(toolSpecs))
	for i, s := range toolSpecs {
		names[i] = s.name
	}
	return names
}()

// ToolSchema describes every tool and its parameters in the shape agent
// frameworks register tools with: {"tools": [{"name", "description",
// "inputSchema"}]}.
func ToolSchema() map[string]interface{} {
	tools := make([]map[string]interface{}, len(toolSpecs))
	for i, s := range toolSpecs {
		props := map[string]interface{}{}
		required := []string{}
		for _, p := range s.params {
			props[p.name] = map[string]interface{}{"type": p.typ}
			if p.required {
				required = append(required, p.name)
			}
		}
		tools[i] = map[string]interface{}{
			"name":        s.name,
			"description": s.description,
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": props,
				"required":   required,
			},
		}
	}
	return map[string]interface{}{"tools": tools}
}

// toolParams reads typed parameters of one request.
type toolParams map[string]interface{}

func (p toolParams) raw(key string) (interface{}, error) {
	v, ok := p[key]
	if !ok {
		return nil, errors.Errorf("missing param: %s", key)
	}
	return v, nil
}

func (p toolParams) expr(key string) (Expr, error) {
	v, err := p.raw(key)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("param %s must be an expression object", key)
	}
	return FromJSON(m)
}

func (p toolParams) str(key string) (string, error) {
	v, err := p.raw(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p toolParams) strs(key string) ([]string, error) {
	v, err := p.raw(key)
	if err != nil {
		return nil, err
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, errors.Errorf("param %s must be an array", key)
	}
	out := make([]string, len(raw))
	for i, r := range raw {
		if out[i], ok = r.(string); !ok {
			return nil, errors.Errorf("param %s[%d] must be a string", key, i)
		}
	}
	return out, nil
}

// integer reads an optional non-negative integer parameter.
func (p toolParams) integer(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0, errors.Errorf("param %s must be a non-negative integer", key)
	}
	return n, nil
}

func respond(e Expr) ToolResponse {
	return ToolResponse{Result: e.toJSON(), LaTeX: e.LaTeX(), String: e.String()}
}

func respondList(es []Expr) ToolResponse {
	res := make([]map[string]interface{}, len(es))
	strs := make([]string, len(es))
	latex := make([]string, len(es))
	for i, e := range es {
		res[i], strs[i], latex[i] = e.toJSON(), e.String(), e.LaTeX()
	}
	return ToolResponse{
		Result: res,
		String: "[" + strings.Join(strs, ", ") + "]",
		LaTeX:  "[" + strings.Join(latex, ", ") + "]",
	}
}

func fail(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

// HandleToolCall runs one tool. Failures, including unknown tools and
// malformed parameters, are reported in ToolResponse.Error.
func HandleToolCall(req ToolRequest) (resp ToolResponse) {
	defer func() {
		if r := recover(); r != nil {
			ni, ok := r.(*NotImplementedError)
			if !ok {
				panic(r)
			}
			resp = fail(ni)
		}
	}()
	p := toolParams(req.Params)

	// Tools taking no expression.
	if req.Tool == "gcd" {
		a, err := p.expr("a")
		if err != nil {
			return fail(err)
		}
		b, err := p.expr("b")
		if err != nil {
			return fail(err)
		}
		var vars []*Sym
		if _, ok := p["vars"]; ok {
			names, err := p.strs("vars")
			if err != nil {
				return fail(err)
			}
			for _, n := range names {
				vars = append(vars, LookupVariable(Vector(a, b), n))
			}
		}
		g, err := PolynomialGcd(a, b, vars...)
		if err != nil {
			return fail(err)
		}
		return respond(g)
	}

	e, err := p.expr("expr")
	if err != nil {
		if !slices.Contains(Tools, req.Tool) {
			return fail(errors.Errorf("unknown tool: %s", req.Tool))
		}
		return fail(err)
	}
	withVar := func() (*Sym, error) {
		name, err := p.str("var")
		if err != nil {
			return nil, err
		}
		return LookupVariable(e, name), nil
	}

	switch req.Tool {
	case "simplify":
		passes, err := p.integer("passes", 0)
		if err != nil {
			return fail(err)
		}
		out, err := SimplifyWith(e, SimplifyOptions{MaxPasses: passes})
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "expand":
		return respond(Expand(e))

	case "latex":
		return ToolResponse{Result: e.LaTeX(), LaTeX: e.LaTeX(), String: e.String()}

	case "free":
		names := freeNames(e).Slice()
		slices.Sort(names)
		return ToolResponse{Result: names, String: strings.Join(names, ", ")}

	case "eval":
		n, err := Evaluate(e)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: numJSON(n), LaTeX: n.LaTeX(), String: n.String()}

	case "nprec":
		digits, err := p.integer("digits", 30)
		if err != nil {
			return fail(err)
		}
		rounding, _ := p["rounding"].(string)
		ctx, err := PrecisionContext(uint32(digits), rounding)
		if err != nil {
			return fail(err)
		}
		d, err := NPrec(e, ctx)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: d.String(), String: d.String()}

	case "diff":
		v, err := withVar()
		if err != nil {
			return fail(err)
		}
		n, err := p.integer("n", 1)
		if err != nil {
			return fail(err)
		}
		d, err := DiffN(e, v, n)
		if err != nil {
			return fail(err)
		}
		return respond(Simplify(d))

	case "subst":
		v, err := withVar()
		if err != nil {
			return fail(err)
		}
		with, err := p.expr("with")
		if err != nil {
			return fail(err)
		}
		return respond(e.Substitute(v, with))

	case "solve":
		v, err := withVar()
		if err != nil {
			return fail(err)
		}
		roots, err := Solve(e, v)
		if err != nil {
			return fail(err)
		}
		return respondList(roots)

	case "taylor", "limit":
		v, err := withVar()
		if err != nil {
			return fail(err)
		}
		at, err := p.expr("at")
		if err != nil {
			return fail(err)
		}
		var out Expr
		if req.Tool == "limit" {
			out, err = Limit(e, v, at)
		} else {
			var order int
			if order, err = p.integer("order", 5); err != nil {
				return fail(err)
			}
			out, err = Taylor(e, v, at, order)
		}
		if err != nil {
			return fail(err)
		}
		return respond(out)
	}
	return fail(errors.Errorf("unknown tool: %s", req.Tool))
}
