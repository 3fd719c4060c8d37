package conf

import "strings"

// Path addresses a node within a configuration tree as a sequence of mapping
// keys. It is carried by validation and resolution errors so callers can
// report the offending node, e.g. "model.embed.nO".
type Path []string

// Child returns a new path extended by key. The receiver is not modified.
func (p Path) Child(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// String renders the path in dotted form. The empty path renders as "(root)".
func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	return strings.Join(p, ".")
}
