// Package types defines the Store interface, the catalog and cart entity
// types, and the standard errors for the parlor storage layer.
package types
