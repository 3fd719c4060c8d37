package resolver

import (
	"reflect"

	"github.com/TheVinhLuong102/thinc/registry"
	"github.com/zclconf/go-cty/cty"
)

// Field is one declared entry of a synthesized schema.
type Field struct {
	Name string
	// Type is the Go-side type the field must ultimately satisfy.
	Type reflect.Type
	// CtyType is the data type for configuration-supplied values, or
	// cty.NilType when the field only accepts a constructed object.
	CtyType  cty.Type
	Default  *cty.Value
	Required bool
}

// Schema is an ephemeral, per-promise validation model: one field per
// constructor parameter, in declaration order. It is synthesized at
// fill-and-validate time and never persisted. Schemas are strict: keys not
// declared here are validation errors.
type Schema struct {
	// SigilKey records which sigil key the schema was synthesized for,
	// e.g. "@layers". It is informational; the sigil itself is represented
	// structurally by the promise node.
	SigilKey string
	Fields   []Field

	byName map[string]int
}

// SynthesizeSchema builds the ad-hoc schema for invoking c via the given
// sigil key. It fails with *registry.SignatureIntrospectionError when the
// constructor's signature is unreadable.
func SynthesizeSchema(c *registry.Constructor, sigilKey string) (*Schema, error) {
	sig, err := c.Signature()
	if err != nil {
		return nil, err
	}
	s := &Schema{SigilKey: sigilKey, byName: make(map[string]int, len(sig.Params))}
	for i, p := range sig.Params {
		s.Fields = append(s.Fields, Field{
			Name:     p.Name,
			Type:     p.Type,
			CtyType:  p.CtyType,
			Default:  p.Default,
			Required: p.Default == nil,
		})
		s.byName[p.Name] = i
	}
	return s, nil
}

// Field returns the declared field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// FieldAt returns the declared field at a positional-argument index.
func (s *Schema) FieldAt(index int) (Field, bool) {
	if index < 0 || index >= len(s.Fields) {
		return Field{}, false
	}
	return s.Fields[index], true
}

// subSchema derives the schema for a plain mapping supplied to a
// struct-typed field, reading the struct's `cty` tags the same way the
// argument decoder does. Fields without a struct type get no sub-schema and
// recurse permissively.
func subSchema(f Field) *Schema {
	t := f.Type
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct || t == reflect.TypeOf(cty.Value{}) {
		return nil
	}

	s := &Schema{byName: make(map[string]int)}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup("cty")
		if !ok || tag == "" || tag == "-" {
			continue
		}
		field := Field{
			Name:     tag,
			Type:     sf.Type,
			CtyType:  registry.ImpliedCtyType(sf.Type),
			Required: sf.Type.Kind() != reflect.Pointer,
		}
		s.byName[tag] = len(s.Fields)
		s.Fields = append(s.Fields, field)
	}
	return s
}
