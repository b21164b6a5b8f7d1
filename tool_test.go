package symcore_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/njchilds90/symcore"
)

// call decodes a request the way a JSON client sends it.
func call(t *testing.T, raw string) sc.ToolResponse {
	t.Helper()
	var req sc.ToolRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return sc.HandleToolCall(req)
}

func resultExpr(t *testing.T, resp sc.ToolResponse) sc.Expr {
	t.Helper()
	require.Empty(t, resp.Error)
	m, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "result %T", resp.Result)
	e, err := sc.FromJSON(m)
	require.NoError(t, err)
	return e
}

const xSquaredPlusX = `{"type":"add","terms":[{"type":"pow","base":{"type":"sym","name":"x"},"exp":{"type":"num","value":"2"}},{"type":"sym","name":"x"}]}`

func TestTool_Diff(t *testing.T) {
	resp := call(t, `{"tool":"diff","params":{"expr":`+xSquaredPlusX+`,"var":"x"}}`)
	assertExpr(t, sc.AddOf(sc.MulOf(sc.N(2), x), sc.N(1)), resultExpr(t, resp))
	assert.Equal(t, "2*x + 1", resp.String)

	resp = call(t, `{"tool":"diff","params":{"expr":`+xSquaredPlusX+`,"var":"x","n":2}}`)
	assertExpr(t, sc.N(2), resultExpr(t, resp))
}

func TestTool_SubstAndEval(t *testing.T) {
	resp := call(t, `{"tool":"subst","params":{"expr":`+xSquaredPlusX+`,"var":"x","with":{"type":"num","value":"3"}}}`)
	assertExpr(t, sc.N(12), resultExpr(t, resp))

	resp = call(t, `{"tool":"eval","params":{"expr":{"type":"sym","name":"x","value":{"type":"num","value":"1/2"}}}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "1/2", resp.String)

	resp = call(t, `{"tool":"eval","params":{"expr":{"type":"sym","name":"x"}}}`)
	assert.Contains(t, resp.Error, "unbound")
}

func TestTool_NPrec(t *testing.T) {
	resp := call(t, `{"tool":"nprec","params":{"expr":{"type":"const","name":"pi"},"digits":20}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "3.1415926535897932385", resp.Result)
}

func TestTool_Solve(t *testing.T) {
	eq := sc.SubOf(sq(x), sc.N(4))
	raw, err := json.Marshal(sc.ToolRequest{Tool: "solve", Params: map[string]interface{}{
		"expr": sc.ToJSONMap(eq),
		"var":  "x",
	}})
	require.NoError(t, err)
	resp := call(t, string(raw))
	require.Empty(t, resp.Error)
	assert.Equal(t, "[-2, 2]", resp.String)
}

func TestTool_Gcd(t *testing.T) {
	resp := call(t, `{"tool":"gcd","params":{"a":{"type":"num","value":"240"},"b":{"type":"num","value":"46"}}}`)
	assertExpr(t, sc.N(2), resultExpr(t, resp))
}

func TestTool_TaylorAndLimit(t *testing.T) {
	sinx := `{"type":"func","name":"sin","arg":{"type":"sym","name":"x"}}`
	zero := `{"type":"num","value":"0"}`
	resp := call(t, `{"tool":"taylor","params":{"expr":`+sinx+`,"var":"x","at":`+zero+`,"order":3}}`)
	want := sc.AddOf(x, sc.MulOf(sc.F(-1, 6), sc.PowOf(x, sc.N(3))))
	assertExpr(t, want, resultExpr(t, resp))

	sinc := `{"type":"mul","factors":[` + sinx + `,{"type":"pow","base":{"type":"sym","name":"x"},"exp":{"type":"num","value":"-1"}}]}`
	resp = call(t, `{"tool":"limit","params":{"expr":`+sinc+`,"var":"x","at":`+zero+`}}`)
	assertExpr(t, sc.N(1), resultExpr(t, resp))
}

func TestTool_VariableKeepsDomain(t *testing.T) {
	p := `{"type":"sym","name":"p","domain":"positive"}`
	resp := call(t, `{"tool":"diff","params":{"expr":`+p+`,"var":"p"}}`)
	assertExpr(t, sc.N(1), resultExpr(t, resp))
}

func TestTool_FreeAndLatex(t *testing.T) {
	resp := call(t, `{"tool":"free","params":{"expr":`+xSquaredPlusX+`}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, []string{"x"}, resp.Result)

	resp = call(t, `{"tool":"latex","params":{"expr":{"type":"num","value":"2/5"}}}`)
	assert.Equal(t, `\frac{2}{5}`, resp.LaTeX)
}

func TestTool_Errors(t *testing.T) {
	resp := call(t, `{"tool":"explode","params":{}}`)
	assert.Contains(t, resp.Error, "unknown tool")
	resp = call(t, `{"tool":"simplify","params":{}}`)
	assert.Contains(t, resp.Error, "missing param: expr")
	resp = call(t, `{"tool":"diff","params":{"expr":`+xSquaredPlusX+`}}`)
	assert.Contains(t, resp.Error, "missing param: var")
	resp = call(t, `{"tool":"diff","params":{"expr":{"type":"rel","op":"<","lhs":{"type":"sym","name":"x"},"rhs":{"type":"num","value":"1"}},"var":"x"}}`)
	assert.Contains(t, resp.Error, "not implemented")
	resp = call(t, `{"tool":"nprec","params":{"expr":{"type":"num","value":"1"},"digits":-3}}`)
	assert.NotEmpty(t, resp.Error)
}

func TestToolSchema_ListsEveryTool(t *testing.T) {
	raw, err := json.Marshal(sc.ToolSchema())
	require.NoError(t, err)
	var schema struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(raw, &schema))
	require.Len(t, schema.Tools, len(sc.Tools))
	for i, tool := range schema.Tools {
		assert.Equal(t, sc.Tools[i], tool.Name)
	}
	assert.Equal(t, []string{"expr", "var"}, schema.Tools[2].InputSchema.Required)
	assert.Equal(t, []string{"a", "b"}, schema.Tools[6].InputSchema.Required)
}
