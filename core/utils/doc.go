// Package utils provides common utility functions for the opnsense-manager application.
// It includes helpers for coercing the loosely typed values found in user declarations
// (YAML documents, CLI flags, HTTP bodies) into the concrete types the field tables expect.
package utils
