package imaging

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/image-editor-mcp/internal/neighborhood"
	"github.com/ironsheep/image-editor-mcp/internal/ops"
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// Number is a numeric parameter as supplied by a client: either a JSON number
// or a string such as "1,5". The empty Number means "not supplied".
type Number string

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return raster.InvalidParameter("parse", "%s is not a number", data)
	}
	*n = Number(f)
	return nil
}

// Set reports whether a value was supplied.
func (n Number) Set() bool {
	return strings.TrimSpace(string(n)) != ""
}

// ParseFloat parses s as a decimal number. A comma is accepted as the decimal
// separator.
func ParseFloat(s string) (float64, error) {
	t := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, raster.InvalidParameter("parse", "%q is not a number", s)
	}
	return f, nil
}

// ParseInt parses s as a whole number. "3", "3.0" and "3,0" all give 3.
func ParseInt(s string) (int, error) {
	f, err := ParseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, raster.InvalidParameter("parse", "%q is not a whole number", s)
	}
	return int(f), nil
}

// ParseOrder parses an order-statistic rank in [0, 8].
func ParseOrder(s string) (int, error) {
	k, err := ParseInt(s)
	if err != nil {
		return 0, err
	}
	if k < 0 || k > neighborhood.MaxOrder {
		return 0, raster.InvalidParameter("order_filter", "order %d outside [0,%d]", k, neighborhood.MaxOrder)
	}
	return k, nil
}

// ParseSigma parses a positive, finite Gaussian sigma.
func ParseSigma(s string) (float64, error) {
	f, err := ParseFloat(s)
	if err != nil {
		return 0, err
	}
	if !(f > 0) || math.IsInf(f, 0) {
		return 0, raster.InvalidParameter("gaussian_blur", "sigma must be positive and finite, got %v", f)
	}
	return f, nil
}

// ParseRatio parses a blend ratio. Out-of-range values are passed through;
// the blend clamps them.
func ParseRatio(s string) (float64, error) {
	f, err := ParseFloat(s)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, raster.InvalidParameter("blend", "ratio is NaN")
	}
	return f, nil
}

// ParseLevel parses a threshold level in [0, 255].
func ParseLevel(s string) (int, error) {
	v, err := ParseInt(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 255 {
		return 0, raster.InvalidParameter("threshold", "level %d outside [0,255]", v)
	}
	return v, nil
}

// ParseDivisor parses a non-zero divisor.
func ParseDivisor(s string) (float64, error) {
	f, err := ParseFloat(s)
	if err != nil {
		return 0, err
	}
	if f == 0 {
		return 0, &raster.OpError{Op: "divide", Err: raster.ErrDivisionByZero}
	}
	return f, nil
}

// RawParams holds operation parameters before validation.
type RawParams struct {
	Value         Number      `json:"value,omitempty"`
	Ratio         Number      `json:"ratio,omitempty"`
	Level         Number      `json:"level,omitempty"`
	Order         Number      `json:"order,omitempty"`
	Sigma         Number      `json:"sigma,omitempty"`
	Kernel        [][]float64 `json:"kernel,omitempty"`
	RequireBinary bool        `json:"require_binary,omitempty"`
}

// ParseParams validates raw for op. Only the parameters op reads are
// inspected; anything not supplied keeps its ops.DefaultParams value.
func ParseParams(op ops.Operation, raw RawParams) (ops.Params, error) {
	p := ops.DefaultParams()
	for _, name := range op.Params {
		var err error
		switch name {
		case "value":
			if !raw.Value.Set() {
				return p, raster.InvalidParameter(op.Name, "value is required")
			}
			if op.Name == "divide" {
				p.Value, err = ParseDivisor(string(raw.Value))
			} else {
				p.Value, err = ParseFloat(string(raw.Value))
			}
			if err == nil && math.IsNaN(p.Value) {
				err = raster.InvalidParameter(op.Name, "value is NaN")
			}
		case "ratio":
			if raw.Ratio.Set() {
				p.Ratio, err = ParseRatio(string(raw.Ratio))
			}
		case "level":
			if raw.Level.Set() {
				p.Level, err = ParseLevel(string(raw.Level))
			}
		case "order":
			if raw.Order.Set() {
				p.Order, err = ParseOrder(string(raw.Order))
			}
		case "sigma":
			if raw.Sigma.Set() {
				p.Sigma, err = ParseSigma(string(raw.Sigma))
			}
		case "kernel":
			if len(raw.Kernel) == 0 {
				return p, raster.InvalidParameter(op.Name, "kernel is required")
			}
			p.Kernel = raw.Kernel
		case "require_binary":
			p.RequireBinary = raw.RequireBinary
		}
		if err != nil {
			return p, err
		}
	}
	return p, nil
}
