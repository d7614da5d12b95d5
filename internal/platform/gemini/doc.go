// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It owns the dual call-shape logic: the preferred
// shape passes the system instruction as a distinct request field, and a
// one-shot fallback folds the instruction into the user content when the
// endpoint rejects the parameter itself. The call strategy is selected
// per client (native, inline, or auto) rather than probed on every call.
package gemini
