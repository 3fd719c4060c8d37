package conf

import "fmt"

// MalformedPromiseError reports a mapping that cannot be interpreted as a
// promise: more than one sigil key, a non-string sigil value, an empty
// category name, or non-contiguous positional argument keys.
type MalformedPromiseError struct {
	Path   Path
	Reason string
}

// Error implements the error interface.
func (e *MalformedPromiseError) Error() string {
	return fmt.Sprintf("malformed promise at %s: %s", e.Path, e.Reason)
}
