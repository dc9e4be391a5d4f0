// Package stockroom holds project-wide constants for the stockroom tool.
package stockroom

// Version is the stockroom release version.
const Version = "0.1.0"

// ModulePath is the Go module path, printed by the version command.
const ModulePath = "github.com/mesh-intelligence/stockroom"
