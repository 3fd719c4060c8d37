package conf

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// FromCtyValue translates a parsed configuration value into a Node tree,
// classifying every mapping as plain or promise along the way.
//
// Objects and maps become mapping nodes; a mapping with exactly one key
// carrying the sigil prefix becomes a promise. Everything else, including
// lists and tuples, stays a scalar cty.Value. A mapping with two or more
// sigil keys is rejected immediately rather than silently treated as plain
// data.
func FromCtyValue(v cty.Value) (*Node, error) {
	return fromCty(v, Path{})
}

func fromCty(v cty.Value, path Path) (*Node, error) {
	if !v.IsKnown() {
		return nil, fmt.Errorf("unknown value at %s", path)
	}
	if v.IsNull() || !(v.Type().IsObjectType() || v.Type().IsMapType()) {
		return Scalar(v), nil
	}

	attrs := v.AsValueMap()
	keys := make([]string, 0, len(attrs))
	var sigils []string
	for key := range attrs {
		if strings.HasPrefix(key, Sigil) {
			sigils = append(sigils, key)
		} else {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	sort.Strings(sigils)

	var node *Node
	switch len(sigils) {
	case 0:
		node = Mapping()
	case 1:
		sigilKey := sigils[0]
		category := strings.TrimPrefix(sigilKey, Sigil)
		if category == "" {
			return nil, &MalformedPromiseError{Path: path, Reason: "sigil key has no category name"}
		}
		nameVal := attrs[sigilKey]
		if nameVal.IsNull() || nameVal.Type() != cty.String {
			return nil, &MalformedPromiseError{
				Path:   path,
				Reason: fmt.Sprintf("value of %q must be a constructor name string", sigilKey),
			}
		}
		node = Promise(category, nameVal.AsString())
	default:
		return nil, &MalformedPromiseError{
			Path:   path,
			Reason: fmt.Sprintf("mapping has %d sigil keys (%s), want exactly one", len(sigils), strings.Join(sigils, ", ")),
		}
	}

	for _, key := range keys {
		child, err := fromCty(attrs[key], path.Child(key))
		if err != nil {
			return nil, err
		}
		node.SetChild(key, child)
	}
	return node, nil
}

// ToCtyValue is the inverse of FromCtyValue: it renders a Node tree back into
// a cty value, restoring the sigil key of every promise. Useful for printing
// filled configurations.
func ToCtyValue(n *Node) cty.Value {
	switch n.Kind() {
	case KindScalar:
		return n.Value()
	default:
		attrs := make(map[string]cty.Value, n.Len()+1)
		if n.IsPromise() {
			attrs[n.SigilKey()] = cty.StringVal(n.Name())
		}
		for _, key := range n.Keys() {
			attrs[key] = ToCtyValue(n.Child(key))
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal
		}
		return cty.ObjectVal(attrs)
	}
}

// NativeValue converts a cty value into plain Go data: strings, bools,
// int64/float64 numbers, []any and map[string]any. Whole numbers that fit in
// an int64 come back as int64.
func NativeValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("cannot convert unknown value")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for key, elem := range v.AsValueMap() {
			native, err := NativeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", key, err)
			}
			out[key] = native
		}
		return out, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := NativeValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
