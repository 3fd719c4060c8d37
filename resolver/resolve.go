package resolver

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/TheVinhLuong102/thinc/internal/ctxlog"
	"github.com/TheVinhLuong102/thinc/registry"
	"github.com/zclconf/go-cty/cty"
)

// Resolver builds object graphs from configuration trees against one
// injected registry. It holds no other state: resolution is reentrant, and
// concurrent Resolve calls are safe once registration has quiesced.
type Resolver struct {
	reg *registry.Registry
}

// New returns a resolver bound to reg. A nil reg binds to registry.Default.
func New(reg *registry.Registry) *Resolver {
	if reg == nil {
		reg = registry.Default
	}
	return &Resolver{reg: reg}
}

// ResolveConfig is the main entry point: it fills and validates node, then
// resolves it, returning the top-level mapping with every promise replaced by
// its constructed object and every remaining scalar surfaced as native Go
// data. The top level must be a plain mapping.
func (r *Resolver) ResolveConfig(ctx context.Context, node *conf.Node) (map[string]any, error) {
	if node.Kind() != conf.KindMapping {
		return nil, fmt.Errorf("top-level configuration must be a plain mapping, got %s", node.Kind())
	}
	filled, err := r.FillAndValidate(ctx, node)
	if err != nil {
		return nil, err
	}
	resolved, err := r.resolve(ctx, filled, conf.Path{})
	if err != nil {
		return nil, err
	}
	out, err := surface(resolved)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// Resolve recursively replaces every promise in node with its constructor's
// return value. Scalars come back as cty.Value, mappings as map[string]any.
// The walk is a pure depth-first transform: children are fully resolved
// before the parent's constructor is invoked, identical subtrees are resolved
// independently, and no node is visited twice.
func (r *Resolver) Resolve(ctx context.Context, node *conf.Node) (any, error) {
	return r.resolve(ctx, node, conf.Path{})
}

func (r *Resolver) resolve(ctx context.Context, node *conf.Node, path conf.Path) (any, error) {
	switch node.Kind() {
	case conf.KindScalar:
		return node.Value(), nil

	case conf.KindMapping:
		out := make(map[string]any, node.Len())
		for _, key := range node.Keys() {
			value, err := r.resolve(ctx, node.Child(key), path.Child(key))
			if err != nil {
				return nil, err
			}
			out[key] = value
		}
		return out, nil

	default:
		return r.resolvePromise(ctx, node, path)
	}
}

func (r *Resolver) resolvePromise(ctx context.Context, node *conf.Node, path conf.Path) (any, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("resolving promise", "path", path.String(), "category", node.Category(), "name", node.Name())

	ctor, err := r.reg.Lookup(node.Category(), node.Name())
	if err != nil {
		return nil, fmt.Errorf("at %s: %w", path, err)
	}
	sig, err := ctor.Signature()
	if err != nil {
		return nil, fmt.Errorf("at %s: %w", path, err)
	}

	positional, kwargs, err := bindArguments(node, path)
	if err != nil {
		return nil, err
	}
	if len(positional) > len(sig.Params) {
		return nil, &conf.MalformedPromiseError{
			Path:   path,
			Reason: fmt.Sprintf("%d positional arguments for %d parameters", len(positional), len(sig.Params)),
		}
	}

	args := make([]any, len(sig.Params))
	set := make([]bool, len(sig.Params))

	for i, child := range positional {
		value, err := r.resolve(ctx, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		args[i] = value
		set[i] = true
	}

	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		index := sig.ParamIndex(name)
		if index < 0 {
			return nil, &UnknownFieldError{Path: path, Field: name}
		}
		if set[index] {
			return nil, &conf.MalformedPromiseError{
				Path:   path,
				Reason: fmt.Sprintf("parameter %q supplied both positionally and by name", name),
			}
		}
		value, err := r.resolve(ctx, kwargs[name], path.Child(name))
		if err != nil {
			return nil, err
		}
		args[index] = value
		set[index] = true
	}

	for i, spec := range sig.Params {
		if set[i] {
			continue
		}
		if spec.Default == nil {
			return nil, &MissingRequiredFieldError{Path: path, Field: spec.Name}
		}
		args[i] = *spec.Default
	}

	// Errors raised by the constructor itself propagate unmodified.
	return ctor.Invoke(ctx, args)
}

// surface converts a resolved tree's remaining cty values into native Go
// data while leaving constructed objects alone.
func surface(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			native, err := surface(elem)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", key, err)
			}
			out[key] = native
		}
		return out, nil
	case cty.Value:
		return conf.NativeValue(v)
	default:
		return value, nil
	}
}
