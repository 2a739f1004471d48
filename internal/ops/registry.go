package ops

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// Category groups operations for listing.
type Category string

const (
	CategoryArithmetic Category = "arithmetic"
	CategoryScalar     Category = "scalar"
	CategoryTransform  Category = "transform"
	CategoryFilter     Category = "filter"
	CategoryEdge       Category = "edge"
	CategoryMorphology Category = "morphology"
)

// Params carries every parameter an operation may read. Each operation
// documents which fields it uses in Operation.Params.
type Params struct {
	Value         float64     `json:"value"`
	Ratio         float64     `json:"ratio"`
	Level         int         `json:"level"`
	Order         int         `json:"order"`
	Sigma         float64     `json:"sigma"`
	Kernel        [][]float64 `json:"kernel,omitempty"`
	RequireBinary bool        `json:"require_binary"`
}

// DefaultParams returns the parameters used when a caller supplies none.
func DefaultParams() Params {
	return Params{
		Ratio: 0.5,
		Level: 128,
		Order: 4,
		Sigma: 1,
	}
}

type runFunc func(in []*raster.Grid, p Params) (*raster.Grid, error)

// Operation describes one registered engine operation.
type Operation struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Inputs      int      `json:"inputs"`
	Params      []string `json:"params,omitempty"`
	Description string   `json:"description"`

	run runFunc
}

// Apply runs the operation on inputs. The number of inputs must match
// op.Inputs.
func (op Operation) Apply(inputs []*raster.Grid, p Params) (*raster.Grid, error) {
	if len(inputs) != op.Inputs {
		return nil, raster.InvalidParameter(op.Name, "needs %d image(s), got %d", op.Inputs, len(inputs))
	}
	for i, g := range inputs {
		if g == nil {
			return nil, raster.InvalidParameter(op.Name, "image %d is nil", i)
		}
	}
	return op.run(inputs, p)
}

var registry = map[string]Operation{}

func register(op Operation) {
	if _, dup := registry[op.Name]; dup {
		panic(fmt.Sprintf("ops: duplicate operation %q", op.Name))
	}
	registry[op.Name] = op
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, error) {
	op, ok := registry[name]
	if !ok {
		return Operation{}, raster.InvalidParameter("lookup", "unknown operation %q", name)
	}
	return op, nil
}

// All returns every operation ordered by category, then name.
func All() []Operation {
	all := lo.Values(registry)
	slices.SortFunc(all, func(a, b Operation) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return all
}

// Names returns the names of all operations in All order.
func Names() []string {
	return lo.Map(All(), func(op Operation, _ int) string { return op.Name })
}
