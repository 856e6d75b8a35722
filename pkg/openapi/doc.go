// Package openapi exposes the public contracts for the loader and parser stages
// that turn the document API's OpenAPI description into operations. The
// implementations live under internal/openapi to keep kin-openapi hidden from
// consumers.
package openapi
