package resulttree

// ResultSection is a (spec, start, end) triple recorded by the decode
// driver for a spec that is not itself result-producing but still has a
// render contribution — e.g. a NumberAttribute field inside a StructSpec.
//
// Spec is stored as `any` rather than a concrete formatspec.Spec type to
// keep this package free of a dependency on the format-spec package (which
// itself depends on resulttree for Builder/Result). Callers that need to
// invoke behavior on Spec type-assert it to whatever narrow interface they
// need (see pkg/render).
type ResultSection struct {
	Spec  any
	Start int64
	End   int64
}
