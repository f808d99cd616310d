// Package tables registers the IMDb sources and the normalized output
// tables derived from them with the core registry.
// Import this package to ensure all tables are registered.
package tables

// Each source file uses init() to register its source and outputs.
// Outputs of one source are registered, and therefore written, in file order.
