// Package api bundles the OpenAPI contract of the document generation API.
package api

import (
	"embed"
	"io/fs"
)

// ContractPath names the bundled contract inside Contracts.
const ContractPath = "openapi.yaml"

//go:embed openapi.yaml
var contracts embed.FS

// Contracts returns the bundled contract set.
func Contracts() fs.FS {
	return contracts
}
