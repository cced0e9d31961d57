// Package schema composes the single JSON Schema document a.k.a. the
// "document grammar" that every loaded test document must validate
// against: a fixed skeleton (TestSet/Test/Task shapes) extended with an
// anyOf branch per registered module.command pair and a defaults
// sub-schema per module's DefaultsSchema.
package schema
