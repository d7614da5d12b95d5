// Package api implements the HTTP handlers, request/response models, and
// error mapping for the story generation endpoints. Handlers validate
// input before any remote call, delegate to the story service, and render
// results as JSON, Server-Sent Events, or a plain-text download.
package api
