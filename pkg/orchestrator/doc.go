// Package orchestrator wires one ordering session: greeting, interview,
// review and corrections, then finalization. Every collaborator can be
// injected; missing ones fall back to console defaults so callers can start
// with a single constructor call.
package orchestrator
