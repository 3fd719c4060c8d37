// Package conf defines the tagged configuration-tree model shared by the
// loader, the registry and the resolver.
//
// A configuration is a tree of Nodes. Each Node is a scalar value, a plain
// string-keyed mapping, or a promise: a mapping that designates a registered
// constructor (by category and name) together with its arguments. Promise
// classification happens exactly once, at the input boundary (FromCtyValue);
// the rest of the system only ever switches on Node.Kind.
package conf
