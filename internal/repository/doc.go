// Package repository implements the Repository: it ingests parsed test
// documents, validates each one against the composed document schema and
// its tasks' command references, places valid documents into a namespace
// tree keyed by dotted test-set name, and propagates tag/defaults/params/
// hook/skip inheritance top-down from a synthetic root.
package repository
