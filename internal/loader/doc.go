// Package loader implements the default filesystem Loader: it walks a
// tests directory (or reads a single file), parses each YAML file as a
// stream of one or more test-set documents, and returns them as
// dexit.TestDocuments for the Repository to validate and place.
package loader
