// Package registry stores named categories of string-keyed constructor
// functions and knows how to invoke them with configuration-supplied
// arguments.
//
// A Registry is an explicit, injectable object: the resolver depends only on
// the instance handed to it, so tests can use disposable registries. The
// package-level Default registry exists for convenience and carries the stock
// "layers", "optimizers" and "schedules" categories.
//
// Constructors are plain Go functions registered together with a declarative
// parameter list (name and optional default). The Go-side parameter and
// return types are introspected once from the function signature; parameters
// whose Go type has a cty equivalent accept configuration data, all others
// accept constructed objects produced by nested promises.
package registry
