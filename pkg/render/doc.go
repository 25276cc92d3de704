// Package render defines the abstract styled-output sink format specs
// render into, and the driver that walks a frozen result tree invoking
// each spec's Render method. The concrete rendering target (HTML, a
// terminal, ...) is always an external collaborator behind the Renderer
// interface; TextRenderer here is a deterministic reference
// implementation used by the core's own tests and by cmd/binlens-scan.
package render
