package resolver

import (
	"testing"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/TheVinhLuong102/thinc/registry"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// model is a stand-in for the objects a real consumer would construct, with
// just enough structure to observe how it was built.
type model struct {
	name     string
	nO       int
	nV       int
	dropout  float64
	children []*model
}

type dimmed interface {
	Dim() int
}

func (m *model) Dim() int { return m.nO }

// newTestRegistry builds a disposable registry with a handful of layer
// constructors covering data, object and interface parameters.
func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New("layers", "optimizers")

	defaultDropout := cty.NumberFloatVal(0.0)

	reg.MustRegister("layers", "Embed.v0", &registry.Constructor{
		Fn: func(nO, nV int, dropout float64) *model {
			return &model{name: "embed", nO: nO, nV: nV, dropout: dropout}
		},
		Params: []registry.Param{
			{Name: "nO"},
			{Name: "nV"},
			{Name: "dropout", Default: &defaultDropout},
		},
	})
	reg.MustRegister("layers", "Softmax.v0", &registry.Constructor{
		Fn:     func(nO int) *model { return &model{name: "softmax", nO: nO} },
		Params: []registry.Param{{Name: "nO"}},
	})
	reg.MustRegister("layers", "Chain.v0", &registry.Constructor{
		Fn: func(a, b *model) *model {
			return &model{name: "chain", children: []*model{a, b}}
		},
		Params: []registry.Param{{Name: "a"}, {Name: "b"}},
	})
	reg.MustRegister("layers", "WithDim.v0", &registry.Constructor{
		Fn:     func(layer dimmed) int { return layer.Dim() },
		Params: []registry.Param{{Name: "layer"}},
	})
	return reg
}

// mustNode translates a cty object into a node tree, failing the test on
// classification errors.
func mustNode(t *testing.T, v cty.Value) *conf.Node {
	t.Helper()
	node, err := conf.FromCtyValue(v)
	require.NoError(t, err)
	return node
}

func obj(attrs map[string]cty.Value) cty.Value {
	return cty.ObjectVal(attrs)
}
