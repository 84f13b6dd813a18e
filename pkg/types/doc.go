// Package types defines the Card and Review entity types, the Store
// interface, the Config struct, and standard error types for the
// cardkeeper catalog system.
package types
