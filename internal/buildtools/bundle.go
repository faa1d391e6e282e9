// Package buildtools minifies the JS bootstrap shim an embedding page uses
// to load a WASM-compiled Contract, via esbuild's Transform API. Grounded
// on the teacher's own esbuild usage (bundle.go's BuildOptions-driven
// bundling), narrowed here to single-file minification since the shim has
// no imports to bundle.
package buildtools

import (
	"fmt"

	esbuild "github.com/evanw/esbuild/pkg/api"
)

// MinifyBootstrap minifies the given JS bootstrap source (the shim that
// instantiates and runs contract.wasm), for cmd/jsaction-bundle and
// internal/demoserver.
func MinifyBootstrap(source string) (string, error) {
	result := esbuild.Transform(source, esbuild.TransformOptions{
		Loader:            esbuild.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Target:            esbuild.ES2022,
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("minifying bootstrap shim: %s", result.Errors[0].Text)
	}
	return string(result.Code), nil
}
