// Package demoserver serves the demo page: an HTML fixture, wasm_exec.js,
// the compiled contract.wasm, and the minified bootstrap shim
// (internal/buildtools), for manual and internal/browsertest-driven
// conformance checks. Grounded on the pack's chi.NewRouter()+middleware
// pattern (horos47/core/chassis/server.go) and caarlos0/env config loading
// (yao/config/config.go), both in the reference pack.
package demoserver

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/caarlos0/env/v6"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jsaction-go/contract/internal/buildtools"
)

// Config is loaded from environment variables (JSACTION_DEMO_*).
type Config struct {
	Addr       string `env:"JSACTION_DEMO_ADDR" envDefault:":8008"`
	WasmPath   string `env:"JSACTION_DEMO_WASM_PATH" envDefault:"./contract.wasm"`
	MinifyShim bool   `env:"JSACTION_DEMO_MINIFY_SHIM" envDefault:"true"`
	SentryDSN  string `env:"JSACTION_DEMO_SENTRY_DSN"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

//go:embed fixtures/index.html fixtures/wasm_exec.js
var fixtures embed.FS

// New builds the demo server's router: the fixture page at "/", the
// bootstrap shim at "/bootstrap.js", wasm_exec.js, the compiled module at
// "/contract.wasm", and an inspector WebSocket at "/inspector" if ws is
// non-nil.
func New(cfg Config, ws http.HandlerFunc) (*chi.Mux, error) {
	shim := buildtools.Shim
	if cfg.MinifyShim {
		minified, err := buildtools.MinifyBootstrap(shim)
		if err != nil {
			return nil, err
		}
		shim = minified
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	index, err := template.ParseFS(fixtures, "fixtures/index.html")
	if err != nil {
		return nil, err
	}
	dsnJSON, err := json.Marshal(cfg.SentryDSN)
	if err != nil {
		return nil, err
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = index.Execute(w, struct{ SentryDSNJSON template.JS }{template.JS(dsnJSON)})
	})
	r.Get("/wasm_exec.js", serveFixture("fixtures/wasm_exec.js", "application/javascript"))
	r.Get("/bootstrap.js", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte(shim))
	})
	r.Get("/contract.wasm", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/wasm")
		http.ServeFile(w, req, cfg.WasmPath)
	})
	if ws != nil {
		r.Get("/inspector", ws)
	}
	return r, nil
}

func serveFixture(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fixtures.ReadFile(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}
