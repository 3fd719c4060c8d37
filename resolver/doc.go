// Package resolver turns configuration trees into live object graphs.
//
// It provides the two passes that operate on a conf.Node tree against a
// registry.Registry:
//
//   - FillAndValidate walks the tree without constructing anything, checks
//     every promise's arguments against an ad-hoc schema synthesized from the
//     constructor signature, and returns a copy of the tree in which every
//     omitted field is populated with its declared default.
//
//   - Resolve walks the tree depth-first and replaces every promise with the
//     value returned by its constructor, so nested promises become concrete
//     objects before being passed as arguments.
//
// ResolveConfig chains the two and is the entry point most callers want.
package resolver
