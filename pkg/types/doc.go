// Package types defines the Record entity, the Store interface, the tool
// configuration, and the standard error types for stockroom.
package types
