// Package order describes the pizza order collected by the bot: the ordered
// field catalog, the per-field validators that normalise raw answers, the
// Record holding current values, and the schema of the persisted record.
//
// Validation is intentionally coarse. Pizza and size answers are matched by
// case-insensitive containment against their catalogs and the first catalog
// entry (in declared order) found in the answer wins, so "large hawaiian"
// resolves to Hawaiian for the pizza question and to large for the size
// question.
package order
