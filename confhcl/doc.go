// Package confhcl loads configuration trees from HCL or JSON files.
//
// A configuration file is a flat set of attributes whose values may be
// arbitrarily nested object expressions. Sigil keys are written as quoted
// object keys, which both syntaxes allow:
//
//	model = {
//	  "@layers" = "Embed.v0"
//	  nO        = 300
//	  nV        = 10000
//	}
//
// The loader evaluates every attribute to a cty value and hands the result
// to conf.FromCtyValue, so promise classification happens here, once, at the
// boundary.
package confhcl
