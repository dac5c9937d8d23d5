//go:build tools

// Package tools manages development tool dependencies.
// golangci-lint, gofumpt and gci are pinned in .golangci.yml and installed
// with `go install`, so nothing is imported here.
package tools
