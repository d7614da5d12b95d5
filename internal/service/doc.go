// Package service contains the application services that coordinate domain
// logic and external collaborators. The story service sits between the API
// layer and the generation port: it validates requests, builds prompts, and
// invokes the configured generator.
package service
