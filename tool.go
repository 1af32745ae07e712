package gopoly

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ToolLimits bounds the work a single tool call may ask for.
type ToolLimits struct {
	MaxPow int32 // largest exponent accepted by the pow tool
}

// NoToolLimits accepts every exponent the grammar can express.
var NoToolLimits = ToolLimits{MaxPow: math.MaxInt32}

// HandleToolCall runs one stateless tool call with NoToolLimits. Polynomial
// parameters are strings in the textual grammar.
func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallLimited(req, NoToolLimits)
}

// HandleToolCallLimited is HandleToolCall for untrusted callers.
func HandleToolCallLimited(req ToolRequest, lim ToolLimits) ToolResponse {
	getPoly := func(key string) (Poly, error) {
		v, ok := req.Params[key]
		if !ok {
			return Zero(), fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return Zero(), fmt.Errorf("param %s must be a string", key)
		}
		p, err := Parse(s)
		if err != nil {
			return Zero(), fmt.Errorf("param %s: %w", key, err)
		}
		return p, nil
	}
	getPolys := func(key string) ([]Poly, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]Poly, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			p, err := Parse(s)
			if err != nil {
				return nil, fmt.Errorf("param %s[%d]: %w", key, i, err)
			}
			result[i] = p
		}
		return result, nil
	}
	// JSON numbers arrive as float64; accept only integral values in range.
	getInt := func(key string, lo, hi float64) (int64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		if f != math.Trunc(f) || f < lo || f > hi {
			return 0, fmt.Errorf("param %s must be an integer in [%.0f, %.0f]", key, lo, hi)
		}
		return int64(f), nil
	}
	respond := func(p Poly) ToolResponse {
		return ToolResponse{Result: p, LaTeX: p.LaTeX(), String: p.String()}
	}
	binary := func(f func(p, q Poly) Poly) ToolResponse {
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		q, err := getPoly("q")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(f(p, q))
	}

	switch req.Tool {
	case "parse":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p)

	case "add":
		return binary(Poly.Add)

	case "sub":
		return binary(Poly.Sub)

	case "mul":
		return binary(Poly.Mul)

	case "neg":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p.Neg())

	case "pow":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		n, err := getInt("n", 0, float64(lim.MaxPow))
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p.Pow(int32(n)))

	case "is_eq":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		q, err := getPoly("q")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p.Equal(q)}

	case "is_zero":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p.IsZero()}

	case "is_coeff":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p.IsCoeff()}

	case "deg":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p.Deg()}

	case "deg_by":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		idx, err := getInt("var", 0, math.MaxInt32)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: p.DegBy(uint64(idx))}

	case "at":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		// float64 cannot carry every int64; stay inside the exact range.
		x, err := getInt("x", -(1 << 53), 1<<53)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p.At(x))

	case "compose":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		q, err := getPolys("q")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(p.Compose(q))

	case "to_latex":
		p, err := getPoly("p")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{LaTeX: p.LaTeX(), String: p.String()}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

const polyGrammar = "polynomial such as (1,0)+(1,2); a monomial is (coefficient,exponent) and coefficients nest for further variables"

func MCPToolSpec() string {
	poly := map[string]string{"p": "string"}
	pair := map[string]string{"p": "string", "q": "string"}
	tools := []map[string]interface{}{
		ts("parse", "Parse a polynomial such as (1,0)+(1,2) into canonical form", []string{"p"}, poly),
		ts("add", "Sum p + q", []string{"p", "q"}, pair),
		ts("sub", "Difference p - q", []string{"p", "q"}, pair),
		ts("mul", "Product p * q", []string{"p", "q"}, pair),
		ts("neg", "Negation -p", []string{"p"}, poly),
		ts("pow", "Power p^n. Requires n (integer >= 0)", []string{"p", "n"}, map[string]string{"p": "string", "n": "integer"}),
		ts("is_eq", "Whether p equals q", []string{"p", "q"}, pair),
		ts("is_zero", "Whether p is the zero polynomial", []string{"p"}, poly),
		ts("is_coeff", "Whether p is a constant", []string{"p"}, poly),
		ts("deg", "Total degree (-1 for zero)", []string{"p"}, poly),
		ts("deg_by", "Degree in variable x_var (-1 for zero)", []string{"p", "var"}, map[string]string{"p": "string", "var": "integer"}),
		ts("at", "Substitute integer x for x_0", []string{"p", "x"}, map[string]string{"p": "string", "x": "integer"}),
		ts("compose", "Substitute q[i] for x_i", []string{"p", "q"}, map[string]string{"p": "string", "q": "array"}),
		ts("to_latex", "Convert to LaTeX", []string{"p"}, poly),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

// ts builds one tool entry. String parameters are always polynomials, so
// they carry the grammar as their description.
func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := make(map[string]interface{}, len(props))
	for k, typ := range props {
		prop := map[string]interface{}{"type": typ}
		switch typ {
		case "string":
			prop["description"] = polyGrammar
		case "array":
			prop["items"] = map[string]interface{}{"type": "string", "description": polyGrammar}
		}
		properties[k] = prop
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
