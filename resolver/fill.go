package resolver

import (
	"context"
	"fmt"
	"reflect"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/TheVinhLuong102/thinc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// placeholder stands in for a promise's constructed value inside the
// validation shadow tree. It carries the constructor's declared return type
// so parent schemas can type-check the field without constructing anything.
type placeholder struct {
	typ reflect.Type
}

// FillAndValidate checks node against the schemas synthesized from its
// promises' constructors and returns a copy in which every omitted field is
// populated with its declared default. Promises are preserved, nothing is
// constructed, and the input tree is left untouched. Filling is idempotent:
// running it again on its own output yields an identical tree.
func (r *Resolver) FillAndValidate(ctx context.Context, node *conf.Node) (*conf.Node, error) {
	switch node.Kind() {
	case conf.KindScalar:
		return node, nil
	case conf.KindPromise:
		filled, _, err := r.fillPromise(ctx, node, conf.Path{})
		return filled, err
	default:
		filled, _, err := r.fillNode(ctx, node, nil, conf.Path{})
		return filled, err
	}
}

// fillPromise synthesizes the promise's schema, fills its arguments, and
// returns the filled promise plus the placeholder that represents it in the
// parent's validation tree.
func (r *Resolver) fillPromise(ctx context.Context, n *conf.Node, path conf.Path) (*conf.Node, any, error) {
	ctor, err := r.reg.Lookup(n.Category(), n.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("at %s: %w", path, err)
	}
	schema, err := SynthesizeSchema(ctor, n.SigilKey())
	if err != nil {
		return nil, nil, fmt.Errorf("at %s: %w", path, err)
	}
	// Reject gaps and duplicates in positional keys up front.
	if _, _, err := bindArguments(n, path); err != nil {
		return nil, nil, err
	}

	filled, _, err := r.fillNode(ctx, n, schema, path)
	if err != nil {
		return nil, nil, err
	}
	sig, _ := ctor.Signature()
	return filled, placeholder{typ: sig.Returns}, nil
}

// fillNode fills one mapping or promise node. With a nil schema the walk is
// permissive: children are still filled recursively but no defaulting, no
// required-field and no unknown-field checking happens at this level. That
// is the behavior at the configuration root, whose sections have no schema.
func (r *Resolver) fillNode(ctx context.Context, n *conf.Node, schema *Schema, path conf.Path) (*conf.Node, map[string]any, error) {
	logger := ctxlog.FromContext(ctx)

	var filled *conf.Node
	if n.IsPromise() {
		filled = conf.Promise(n.Category(), n.Name())
	} else {
		filled = conf.Mapping()
	}
	validation := make(map[string]any, n.Len())
	supplied := make(map[string]struct{}, n.Len())

	for _, key := range n.Keys() {
		child := n.Child(key)

		var field *Field
		if schema != nil {
			f, ok := r.lookupField(schema, n, key)
			if !ok {
				return nil, nil, &UnknownFieldError{Path: path, Field: key}
			}
			if _, dup := supplied[f.Name]; dup {
				return nil, nil, &conf.MalformedPromiseError{
					Path:   path,
					Reason: fmt.Sprintf("parameter %q supplied both positionally and by name", f.Name),
				}
			}
			field = &f
			supplied[f.Name] = struct{}{}
		}

		switch child.Kind() {
		case conf.KindPromise:
			childFilled, ph, err := r.fillPromise(ctx, child, path.Child(key))
			if err != nil {
				return nil, nil, err
			}
			filled.SetChild(key, childFilled)
			validation[key] = ph

		case conf.KindMapping:
			var sub *Schema
			if field != nil {
				sub = subSchema(*field)
			}
			childFilled, childValidation, err := r.fillNode(ctx, child, sub, path.Child(key))
			if err != nil {
				return nil, nil, err
			}
			filled.SetChild(key, childFilled)
			validation[key] = childValidation

		default:
			filled.SetChild(key, child)
			validation[key] = child.Value()
		}
	}

	if schema == nil {
		return filled, validation, nil
	}

	// Populate every field the input omitted from its declared default.
	for _, f := range schema.Fields {
		if _, ok := supplied[f.Name]; ok {
			continue
		}
		if f.Default == nil {
			if f.Required {
				return nil, nil, &MissingRequiredFieldError{Path: path, Field: f.Name}
			}
			continue
		}
		logger.Debug("filling omitted field from default", "path", path.Child(f.Name).String())
		filled.SetChild(f.Name, conf.Scalar(*f.Default))
		validation[f.Name] = *f.Default
	}

	// Validate the accumulated shadow tree against the schema's types.
	for _, key := range filled.Keys() {
		field, ok := r.lookupField(schema, n, key)
		if !ok {
			return nil, nil, &UnknownFieldError{Path: path, Field: key}
		}
		if err := checkFieldValue(field, validation[key], path, key); err != nil {
			return nil, nil, err
		}
	}
	return filled, validation, nil
}

// lookupField maps a configuration key onto a schema field. On promise nodes
// a digit-string key addresses the parameter at that position.
func (r *Resolver) lookupField(schema *Schema, n *conf.Node, key string) (Field, bool) {
	if n.IsPromise() {
		if index, ok := positionalIndex(key); ok {
			return schema.FieldAt(index)
		}
	}
	return schema.Field(key)
}

// checkFieldValue type-checks one validation-tree entry against its field.
func checkFieldValue(field Field, value any, path conf.Path, key string) error {
	switch v := value.(type) {
	case placeholder:
		if field.Type != nil && !v.typ.AssignableTo(field.Type) {
			return &TypeMismatchError{
				Path:  path,
				Field: key,
				Want:  field.Type.String(),
				Got:   v.typ.String(),
			}
		}
	case cty.Value:
		if field.CtyType != cty.NilType {
			if _, err := convert.Convert(v, field.CtyType); err != nil {
				return &TypeMismatchError{
					Path:  path,
					Field: key,
					Want:  field.CtyType.FriendlyName(),
					Got:   v.Type().FriendlyName(),
				}
			}
			return nil
		}
		// The field wants a constructed object; raw data is only acceptable
		// for open-ended parameter types, which the invocation decoder can
		// populate from any value.
		if !acceptsRawData(field.Type) {
			return &TypeMismatchError{
				Path:  path,
				Field: key,
				Want:  field.Type.String(),
				Got:   v.Type().FriendlyName(),
			}
		}
	case map[string]any:
		// A mapping-shaped value: its own entries were validated by the
		// recursion, but the field itself must be able to hold a mapping.
		if field.CtyType != cty.NilType {
			if !field.CtyType.IsObjectType() && !field.CtyType.IsMapType() {
				return &TypeMismatchError{
					Path:  path,
					Field: key,
					Want:  field.CtyType.FriendlyName(),
					Got:   "mapping",
				}
			}
			return nil
		}
		if !acceptsRawData(field.Type) {
			return &TypeMismatchError{
				Path:  path,
				Field: key,
				Want:  field.Type.String(),
				Got:   "mapping",
			}
		}
	}
	return nil
}

// acceptsRawData reports whether a Go parameter type without a cty
// equivalent can still be populated from configuration data.
func acceptsRawData(t reflect.Type) bool {
	if t == nil {
		return true
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Struct:
		return true
	case reflect.Interface:
		return t.NumMethod() == 0
	default:
		return t == reflect.TypeOf(cty.Value{})
	}
}
