//go:build tools

package tools

// Tool dependencies are tracked here with blank imports so `go mod tidy`
// keeps them in go.sum without pulling them into any runtime build.
import _ "golang.org/x/tools/cmd/goimports"
