// Package formatspec is the declarative combinator core: every construct a
// format description is built from — primitives, structs, arrays, unions,
// conditionals, encoded sections — implements the uniform Spec contract.
// A Spec never reads anything except through a scanin.Input, and never
// writes anywhere except through a resulttree.Builder or a render.Renderer
// handed to it by the decode/render drivers.
package formatspec
