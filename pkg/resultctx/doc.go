// Package resultctx implements the lexically scoped attribute-value store
// that binds decoded values during decode and resolves them again during
// render. There is no package-level "current context" — every function
// that needs one takes it as an explicit argument, and scopes are pushed
// and popped in lockstep with the result builder tree.
package resultctx
