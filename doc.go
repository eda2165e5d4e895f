// Package seam is the runtime support layer for compiled template
// rendering. A compiler outside this module turns template source into
// a Program of render steps; this package executes those steps against
// a display of host values, accumulating output fragments in a
// render.Transaction and joining them into a single narrow or wide
// text.
//
// A render runs on one goroutine from start to finish. Programs are
// immutable and shareable; transactions, stacks and scopes belong to
// exactly one render pass.
package seam
