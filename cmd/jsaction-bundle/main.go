// Command jsaction-bundle minifies the JS bootstrap shim and writes it to
// disk, for deployments that pre-build static assets rather than serving
// the shim from internal/demoserver directly.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/jsaction-go/contract/internal/buildtools"
)

func main() {
	out := flag.String("out", "bootstrap.min.js", "output path for the minified bootstrap shim")
	flag.Parse()

	minified, err := buildtools.MinifyBootstrap(buildtools.Shim)
	if err != nil {
		log.Fatalf("jsaction-bundle: %v", err)
	}
	if err := os.WriteFile(*out, []byte(minified), 0o644); err != nil {
		log.Fatalf("jsaction-bundle: writing %s: %v", *out, err)
	}
	log.Printf("jsaction-bundle: wrote %s", *out)
}
