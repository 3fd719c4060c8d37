package registry

import "fmt"

// DuplicateCategoryError reports an attempt to create a category that
// already exists.
type DuplicateCategoryError struct {
	Category string
}

func (e *DuplicateCategoryError) Error() string {
	return fmt.Sprintf("registry category %q already exists", e.Category)
}

// DuplicateEntryError reports an attempt to register a constructor under a
// name that is already taken within its category. Registration never
// overrides an existing entry.
type DuplicateEntryError struct {
	Category string
	Name     string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("constructor %q already registered in category %q", e.Name, e.Category)
}

// UnknownCategoryError reports a lookup or registration against a category
// that was never created.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown registry category %q", e.Category)
}

// UnknownEntryError reports a lookup for a name that is absent from an
// existing category.
type UnknownEntryError struct {
	Category string
	Name     string
}

func (e *UnknownEntryError) Error() string {
	return fmt.Sprintf("could not find %q in registry category %q", e.Name, e.Category)
}

// SignatureIntrospectionError reports a constructor whose function signature
// cannot be reconciled with its declared parameter list.
type SignatureIntrospectionError struct {
	Reason string
}

func (e *SignatureIntrospectionError) Error() string {
	return "constructor signature cannot be introspected: " + e.Reason
}
