package swagger

import (
	"bytes"
	_ "embed"
	"fmt"
)

// OpenAPI is the embedded OpenAPI YAML document.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Check verifies the embedded document looks like an OpenAPI 3 file.
func Check() error {
	if !bytes.HasPrefix(bytes.TrimSpace(OpenAPI), []byte("openapi: 3")) {
		return fmt.Errorf("%w: openapi.yaml is missing or malformed", ErrServe)
	}
	return nil
}
