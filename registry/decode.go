package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/TheVinhLuong102/thinc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeValue recursively populates a Go value from a cty.Value, guided by
// the parameter's declared cty type. want may be cty.DynamicPseudoType, in
// which case the value's own type drives the decoding.
func decodeValue(ctx context.Context, val cty.Value, want cty.Type, goVal any) error {
	ptr := reflect.ValueOf(goVal).Elem()
	goType := ptr.Type()

	// A parameter declared as cty.Value takes the configuration data as-is.
	if goType == reflect.TypeOf(cty.Value{}) {
		ptr.Set(reflect.ValueOf(val))
		return nil
	}

	if !val.IsKnown() || val.IsNull() {
		return nil
	}

	switch goType.Kind() {
	case reflect.Struct:
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("cannot decode %s into struct %s", val.Type().FriendlyName(), goType)
		}
		return decodeStruct(ctx, val, want, ptr)

	case reflect.Map:
		return decodeMap(ctx, val, want, ptr)

	case reflect.Slice:
		return decodeSlice(ctx, val, want, ptr)

	case reflect.Pointer:
		elem := reflect.New(goType.Elem())
		if err := decodeValue(ctx, val, want, elem.Interface()); err != nil {
			return err
		}
		ptr.Set(elem)
		return nil

	case reflect.Interface:
		// Plain `any`: hand back native Go data.
		native, err := conf.NativeValue(val)
		if err != nil {
			return err
		}
		if native != nil {
			ptr.Set(reflect.ValueOf(native))
		}
		return nil

	default:
		// Primitives: convert to the declared type first so that mismatches
		// surface as conversion errors rather than decoder panics.
		if want == cty.DynamicPseudoType || want == cty.NilType {
			if implied, err := gocty.ImpliedType(reflect.Zero(goType).Interface()); err == nil {
				want = implied
			} else {
				want = val.Type()
			}
		}
		converted, err := convert.Convert(val, want)
		if err != nil {
			return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
		}
		return gocty.FromCtyValue(converted, goVal)
	}
}

// decodeStruct fills a Go struct from an object value using `cty` field tags,
// mirroring how parameter types are implied in the other direction.
func decodeStruct(ctx context.Context, val cty.Value, want cty.Type, ptr reflect.Value) error {
	logger := ctxlog.FromContext(ctx)
	attrs := val.AsValueMap()
	goType := ptr.Type()

	for i := 0; i < goType.NumField(); i++ {
		field := goType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup("cty")
		if !ok || tag == "" || tag == "-" {
			continue
		}
		attr, ok := attrs[tag]
		if !ok {
			logger.Debug("struct field absent from configuration object", "field", tag)
			continue
		}

		attrWant := cty.DynamicPseudoType
		if want.IsObjectType() && want.HasAttribute(tag) {
			attrWant = want.AttributeType(tag)
		}
		if err := decodeValue(ctx, attr, attrWant, ptr.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("in attribute %q: %w", tag, err)
		}
	}
	return nil
}

func decodeMap(ctx context.Context, val cty.Value, want cty.Type, ptr reflect.Value) error {
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return fmt.Errorf("cannot decode %s into map %s", val.Type().FriendlyName(), ptr.Type())
	}
	if ptr.Type() == reflect.TypeOf(map[string]any(nil)) {
		native, err := conf.NativeValue(val)
		if err != nil {
			return err
		}
		if native != nil {
			ptr.Set(reflect.ValueOf(native))
		}
		return nil
	}

	out := reflect.MakeMap(ptr.Type())
	var elemWant cty.Type
	if want.IsMapType() {
		elemWant = want.ElementType()
	} else {
		elemWant = cty.DynamicPseudoType
	}
	it := val.ElementIterator()
	for it.Next() {
		key, elem := it.Element()
		elemPtr := reflect.New(ptr.Type().Elem())
		if err := decodeValue(ctx, elem, elemWant, elemPtr.Interface()); err != nil {
			return fmt.Errorf("in element %q: %w", key.AsString(), err)
		}
		out.SetMapIndex(reflect.ValueOf(key.AsString()), elemPtr.Elem())
	}
	ptr.Set(out)
	return nil
}

func decodeSlice(ctx context.Context, val cty.Value, want cty.Type, ptr reflect.Value) error {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return fmt.Errorf("cannot decode %s into slice %s", ty.FriendlyName(), ptr.Type())
	}

	var elemWant cty.Type
	switch {
	case want.IsListType() || want.IsSetType():
		elemWant = want.ElementType()
	default:
		elemWant = cty.DynamicPseudoType
	}

	out := reflect.MakeSlice(ptr.Type(), val.LengthInt(), val.LengthInt())
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, elem := it.Element()
		if err := decodeValue(ctx, elem, elemWant, out.Index(i).Addr().Interface()); err != nil {
			return fmt.Errorf("in element %d: %w", i, err)
		}
	}
	ptr.Set(out)
	return nil
}
