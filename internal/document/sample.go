package document

import (
	_ "embed"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// BuiltinCatalog returns a fresh copy of the presets shipped with the binary.
func BuiltinCatalog() (*Catalog, error) {
	return ParseCatalog(builtinCatalog)
}
