// Package generation provides interfaces and implementations for interacting
// with external AI/LLM services for story generation. It abstracts the
// details of LLM API integration (Gemini), allowing the application to
// generate personalized stories without coupling to specific external
// services. The package also owns prompt construction: the mapping from a
// domain.StoryRequest to the system instruction and user content sent to
// the model.
package generation
