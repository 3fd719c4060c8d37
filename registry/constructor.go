package registry

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Param declares one constructor parameter: its configuration-facing name
// and, optionally, a default value used when the configuration omits it.
// Parameters without a default are required.
type Param struct {
	Name    string
	Default *cty.Value
}

// Constructor pairs a Go function with the declarative parameter list that
// maps configuration keys onto its arguments. Fn may optionally accept a
// leading context.Context, and must return either a single value or a value
// and an error.
type Constructor struct {
	Fn     any
	Params []Param

	once sync.Once
	sig  *Signature
	err  error
}

// ParamSpec is the introspected form of one parameter.
type ParamSpec struct {
	Name string
	// Type is the Go parameter type of Fn.
	Type reflect.Type
	// CtyType is the cty equivalent of Type, derived the same way the
	// configuration decoder derives it. It is cty.NilType when the parameter
	// has no data representation and instead expects a constructed object.
	CtyType cty.Type
	Default *cty.Value
}

// Signature is the introspected shape of a constructor: its parameters and
// declared return type. It is derived once per Constructor and cached.
type Signature struct {
	Params  []ParamSpec
	Returns reflect.Type

	fn         reflect.Value
	wantsCtx   bool
	returnsErr bool
}

// ParamIndex returns the position of the named parameter, or -1.
func (s *Signature) ParamIndex(name string) int {
	for i, p := range s.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// ImpliedCtyType derives the data type for a Go parameter type, or
// cty.NilType when the type has no data representation (interfaces,
// functions, untagged structs, raw cty.Value parameters).
func ImpliedCtyType(goType reflect.Type) cty.Type {
	if goType.Kind() == reflect.Interface || goType == reflect.TypeOf(cty.Value{}) {
		return cty.NilType
	}
	implied, err := gocty.ImpliedType(reflect.Zero(goType).Interface())
	if err != nil {
		return cty.NilType
	}
	return implied
}

// Signature introspects the constructor's function, reconciling it with the
// declared parameter list. The result is cached; an unusable function shape
// yields a *SignatureIntrospectionError.
func (c *Constructor) Signature() (*Signature, error) {
	c.once.Do(func() {
		c.sig, c.err = c.introspect()
	})
	return c.sig, c.err
}

func (c *Constructor) introspect() (*Signature, error) {
	fv := reflect.ValueOf(c.Fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, &SignatureIntrospectionError{Reason: fmt.Sprintf("%T is not a function", c.Fn)}
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, &SignatureIntrospectionError{Reason: "variadic constructors are not supported"}
	}

	sig := &Signature{fn: fv}
	first := 0
	if ft.NumIn() > 0 && ft.In(0) == ctxType {
		sig.wantsCtx = true
		first = 1
	}
	if got := ft.NumIn() - first; got != len(c.Params) {
		return nil, &SignatureIntrospectionError{
			Reason: fmt.Sprintf("declares %d parameters but the function takes %d", len(c.Params), got),
		}
	}

	seen := make(map[string]struct{}, len(c.Params))
	for i, p := range c.Params {
		if p.Name == "" {
			return nil, &SignatureIntrospectionError{Reason: fmt.Sprintf("parameter %d has no name", i)}
		}
		if _, dup := seen[p.Name]; dup {
			return nil, &SignatureIntrospectionError{Reason: fmt.Sprintf("duplicate parameter name %q", p.Name)}
		}
		seen[p.Name] = struct{}{}

		goType := ft.In(first + i)
		spec := ParamSpec{Name: p.Name, Type: goType, CtyType: ImpliedCtyType(goType), Default: p.Default}
		if p.Default != nil {
			if spec.CtyType == cty.NilType {
				return nil, &SignatureIntrospectionError{
					Reason: fmt.Sprintf("parameter %q expects a constructed %s and cannot have a default", p.Name, goType),
				}
			}
			if _, err := convert.Convert(*p.Default, spec.CtyType); err != nil {
				return nil, &SignatureIntrospectionError{
					Reason: fmt.Sprintf("default for %q is not convertible to %s: %v", p.Name, spec.CtyType.FriendlyName(), err),
				}
			}
		}
		sig.Params = append(sig.Params, spec)
	}

	switch ft.NumOut() {
	case 1:
		sig.Returns = ft.Out(0)
	case 2:
		if !ft.Out(1).Implements(errType) {
			return nil, &SignatureIntrospectionError{Reason: "second return value must be an error"}
		}
		sig.Returns = ft.Out(0)
		sig.returnsErr = true
	default:
		return nil, &SignatureIntrospectionError{Reason: "must return a value, or a value and an error"}
	}
	return sig, nil
}

// Invoke calls the constructor with one argument per parameter, in
// declaration order. Each argument is either a cty.Value (configuration
// data, decoded into the Go parameter type) or an already-constructed object
// (assigned directly). Errors returned by the constructor itself propagate
// unmodified.
func (c *Constructor) Invoke(ctx context.Context, args []any) (any, error) {
	sig, err := c.Signature()
	if err != nil {
		return nil, err
	}
	if len(args) != len(sig.Params) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(sig.Params), len(args))
	}

	call := make([]reflect.Value, 0, len(args)+1)
	if sig.wantsCtx {
		call = append(call, reflect.ValueOf(ctx))
	}
	for i, spec := range sig.Params {
		target := reflect.New(spec.Type)
		if err := decodeInto(ctx, args[i], spec, target); err != nil {
			return nil, fmt.Errorf("argument %q: %w", spec.Name, err)
		}
		call = append(call, target.Elem())
	}

	out := sig.fn.Call(call)
	if sig.returnsErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// decodeInto populates target (a pointer value) from one bound argument.
func decodeInto(ctx context.Context, arg any, spec ParamSpec, target reflect.Value) error {
	if v, ok := arg.(cty.Value); ok {
		want := spec.CtyType
		if want == cty.NilType {
			want = cty.DynamicPseudoType
		}
		return decodeValue(ctx, v, want, target.Interface())
	}

	dst := target.Elem()
	if arg == nil {
		return nil
	}
	av := reflect.ValueOf(arg)
	if !av.Type().AssignableTo(dst.Type()) {
		return fmt.Errorf("cannot use constructed value of type %T as %s", arg, dst.Type())
	}
	dst.Set(av)
	return nil
}
