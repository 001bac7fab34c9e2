// Package collab holds the external capabilities the order flow calls into
// but does not depend on: a Greeter producing the opening line and a Narrator
// reading the confirmed order back. Each has an HTTP-backed implementation and
// an offline one. Callers treat every failure as non-fatal.
package collab
