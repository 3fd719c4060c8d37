package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type widget struct {
	size  int
	label string
}

func TestSignatureIntrospection(t *testing.T) {
	floatDefault := cty.NumberFloatVal(0.5)
	objectDefault := cty.NumberIntVal(1)

	testCases := []struct {
		name    string
		ctor    *Constructor
		wantErr string
	}{
		{
			name: "not a function",
			ctor: &Constructor{Fn: "nope"},

			wantErr: "not a function",
		},
		{
			name: "variadic",
			ctor: &Constructor{
				Fn:     func(xs ...int) int { return 0 },
				Params: []Param{{Name: "xs"}},
			},
			wantErr: "variadic",
		},
		{
			name: "arity mismatch",
			ctor: &Constructor{
				Fn:     func(a, b int) int { return 0 },
				Params: []Param{{Name: "a"}},
			},
			wantErr: "declares 1 parameters but the function takes 2",
		},
		{
			name: "unnamed parameter",
			ctor: &Constructor{
				Fn:     func(a int) int { return 0 },
				Params: []Param{{}},
			},
			wantErr: "has no name",
		},
		{
			name: "duplicate parameter name",
			ctor: &Constructor{
				Fn:     func(a, b int) int { return 0 },
				Params: []Param{{Name: "a"}, {Name: "a"}},
			},
			wantErr: "duplicate parameter name",
		},
		{
			name: "default on object parameter",
			ctor: &Constructor{
				Fn:     func(w *widget) int { return 0 },
				Params: []Param{{Name: "w", Default: &objectDefault}},
			},
			wantErr: "cannot have a default",
		},
		{
			name: "default not convertible",
			ctor: &Constructor{
				Fn:     func(flag bool) bool { return flag },
				Params: []Param{{Name: "flag", Default: &floatDefault}},
			},
			wantErr: "not convertible",
		},
		{
			name:    "no return value",
			ctor:    &Constructor{Fn: func() {}},
			wantErr: "must return a value",
		},
		{
			name: "second return not error",
			ctor: &Constructor{
				Fn: func() (int, int) { return 0, 0 },
			},
			wantErr: "must be an error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.ctor.Signature()
			var sigErr *SignatureIntrospectionError
			require.ErrorAs(t, err, &sigErr)
			assert.Contains(t, sigErr.Reason, tc.wantErr)
		})
	}
}

func TestSignatureParamTypes(t *testing.T) {
	ctor := &Constructor{
		Fn:     func(nO int, rate float64, name string, w *widget) *widget { return w },
		Params: []Param{{Name: "nO"}, {Name: "rate"}, {Name: "name"}, {Name: "w"}},
	}
	sig, err := ctor.Signature()
	require.NoError(t, err)
	require.Len(t, sig.Params, 4)

	assert.True(t, sig.Params[0].CtyType.Equals(cty.Number))
	assert.True(t, sig.Params[1].CtyType.Equals(cty.Number))
	assert.True(t, sig.Params[2].CtyType.Equals(cty.String))
	// Pointer-to-struct without cty tags has no data representation.
	assert.Equal(t, cty.NilType, sig.Params[3].CtyType)

	assert.Equal(t, 2, sig.ParamIndex("name"))
	assert.Equal(t, -1, sig.ParamIndex("missing"))
}

func TestInvokeDecodesData(t *testing.T) {
	ctor := &Constructor{
		Fn: func(size int, label string) *widget {
			return &widget{size: size, label: label}
		},
		Params: []Param{{Name: "size"}, {Name: "label"}},
	}

	out, err := ctor.Invoke(context.Background(), []any{cty.NumberIntVal(12), cty.StringVal("emb")})
	require.NoError(t, err)
	w, ok := out.(*widget)
	require.True(t, ok)
	assert.Equal(t, 12, w.size)
	assert.Equal(t, "emb", w.label)
}

func TestInvokePassesObjects(t *testing.T) {
	inner := &widget{size: 1}
	ctor := &Constructor{
		Fn:     func(w *widget) *widget { return w },
		Params: []Param{{Name: "w"}},
	}

	out, err := ctor.Invoke(context.Background(), []any{inner})
	require.NoError(t, err)
	assert.Same(t, inner, out)
}

func TestInvokeObjectTypeMismatch(t *testing.T) {
	ctor := &Constructor{
		Fn:     func(w *widget) *widget { return w },
		Params: []Param{{Name: "w"}},
	}

	_, err := ctor.Invoke(context.Background(), []any{"not a widget"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `argument "w"`)
}

func TestInvokeWithContextParameter(t *testing.T) {
	type ctxKey struct{}
	ctor := &Constructor{
		Fn: func(ctx context.Context, label string) string {
			return ctx.Value(ctxKey{}).(string) + label
		},
		Params: []Param{{Name: "label"}},
	}

	ctx := context.WithValue(context.Background(), ctxKey{}, "from-")
	out, err := ctor.Invoke(ctx, []any{cty.StringVal("ctx")})
	require.NoError(t, err)
	assert.Equal(t, "from-ctx", out)
}

func TestInvokeConstructorErrorPropagatesUnwrapped(t *testing.T) {
	boom := errors.New("boom")
	ctor := &Constructor{
		Fn:     func(size int) (*widget, error) { return nil, boom },
		Params: []Param{{Name: "size"}},
	}

	_, err := ctor.Invoke(context.Background(), []any{cty.NumberIntVal(1)})
	assert.Equal(t, boom, err)
}

func TestInvokeSliceAndMapArguments(t *testing.T) {
	ctor := &Constructor{
		Fn: func(sizes []int, names map[string]string) int {
			return len(sizes) + len(names)
		},
		Params: []Param{{Name: "sizes"}, {Name: "names"}},
	}

	sizes := cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)})
	names := cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("x")})
	out, err := ctor.Invoke(context.Background(), []any{sizes, names})
	require.NoError(t, err)
	assert.Equal(t, 3, out)
}
