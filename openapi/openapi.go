// Package openapi embeds the API description served at /openapi.yaml.
package openapi

import _ "embed"

// Document holds openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var Document []byte
