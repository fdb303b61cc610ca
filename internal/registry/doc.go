// Package registry provides the central "glue" between the CLI shell and
// the engine operations.
//
// The Registry stores mappings between the command names an operator types
// (e.g., "validate") and the compiled Go operations that implement them.
// During application startup the registry is populated from the operation
// modules and the requested command is resolved against it, so an unknown
// command is rejected before any file is touched.
package registry
