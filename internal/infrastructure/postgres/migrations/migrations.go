// Package migrations esquema de la API de identidad, aplicado con goose.
package migrations

import "embed"

// FS archivos SQL embebidos en el binario de migración.
//
//go:embed *.sql
var FS embed.FS
