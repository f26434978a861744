//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools (see the tool block in go.mod):
// - github.com/matryer/moq (mocks for consumer-side interfaces)
// - github.com/pressly/goose/v3/cmd/goose (migrations outside auto_migrate)
