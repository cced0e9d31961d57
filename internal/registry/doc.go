// Package registry holds the set of loaded modules and resolves
// `module.command` identifiers to their Command, compiling each command's
// JSON Schema once at registration time and caching the compiled
// validator for reuse by the Repository.
package registry
