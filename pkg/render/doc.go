// Package render turns an order record into the text shown during review and
// the summary handed to narration. Templates are pongo2 files embedded in the
// package; callers can point the engine at a directory or fs.FS to override
// them.
package render
