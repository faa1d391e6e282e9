// Command jsaction-demo serves the demo fixture page and inspector
// WebSocket used by internal/browsertest and manual conformance checks.
package main

import (
	"log"
	"net/http"

	"github.com/jsaction-go/contract/internal/demoserver"
	"github.com/jsaction-go/contract/internal/inspector"
)

func main() {
	cfg, err := demoserver.LoadConfig()
	if err != nil {
		log.Fatalf("jsaction-demo: loading config: %v", err)
	}

	insp := inspector.NewServer()
	router, err := demoserver.New(cfg, insp.Handler())
	if err != nil {
		log.Fatalf("jsaction-demo: building router: %v", err)
	}

	log.Printf("jsaction-demo: listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("jsaction-demo: %v", err)
	}
}
