// Command riskform serves the prediction form over HTTP: one page with a
// control per schema field, a submit flow against the prediction service,
// and a metrics panel.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-riskform/pkg/client"
	"github.com/goliatone/go-riskform/pkg/form"
	"github.com/goliatone/go-riskform/pkg/openapi"
	"github.com/goliatone/go-riskform/pkg/render"
	"github.com/goliatone/go-riskform/pkg/renderers/html"
	"github.com/goliatone/go-riskform/pkg/schema"
)

func main() {
	// Missing .env files are fine; the environment may already be set.
	_ = godotenv.Load()

	var (
		addrFlag      = flag.String("addr", ":8383", "HTTP listen address")
		apiFlag       = flag.String("api", "", "prediction service base URL (defaults to RISKFORM_API_BASE or "+client.DefaultBaseURL+")")
		schemaFlag    = flag.String("schema", "", "local schema document (JSON/YAML field schema or OpenAPI); skips the remote schema fetch")
		operationFlag = flag.String("operation", "", "OpenAPI operation ID when -schema points at an OpenAPI document")
		rendererFlag  = flag.String("renderer", "html", "renderer name")
		titleFlag     = flag.String("title", "", "page title override")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "shutdown grace period")
	)
	flag.Parse()

	api := client.New(client.WithBaseURL(*apiFlag))

	var localSchema *schema.FieldSchema
	if *schemaFlag != "" {
		loaded, err := loadLocalSchema(context.Background(), *schemaFlag, *operationFlag)
		if err != nil {
			log.Fatalf("schema: %v", err)
		}
		localSchema = &loaded
	}

	htmlOptions := []html.Option{}
	if *titleFlag != "" {
		htmlOptions = append(htmlOptions, html.WithTitle(*titleFlag))
	}
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		log.Fatalf("html renderer: %v", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)

	renderer, err := registry.Get(*rendererFlag)
	if err != nil {
		log.Fatalf("renderer %q is not registered (have %v)", *rendererFlag, registry.List())
	}

	server := &formServer{
		controller:  form.NewController(api),
		renderer:    renderer,
		localSchema: localSchema,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", server.pageHandler)
	mux.HandleFunc("/submit", server.submitHandler)
	mux.HandleFunc("/reset", server.resetHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: mux,
	}

	log.Printf("listening on %s (service %s renderer %s)", *addrFlag, api.BaseURL(), renderer.Name())

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// formServer holds one shared form session. The controller serializes all
// state access; loadOnce makes the initial fetch happen on the first page
// view only.
type formServer struct {
	controller  *form.Controller
	renderer    render.Renderer
	localSchema *schema.FieldSchema

	loadOnce sync.Once
}

func (s *formServer) ensureLoaded(ctx context.Context) {
	s.loadOnce.Do(func() {
		if s.localSchema != nil {
			s.controller.UseSchema(*s.localSchema)
			s.controller.LoadMetrics(ctx)
			return
		}
		s.controller.Load(ctx)
	})
}

func (s *formServer) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.ensureLoaded(r.Context())
	s.renderPage(w, r)
}

func (s *formServer) submitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	s.ensureLoaded(r.Context())

	fields, loaded := s.controller.Schema()
	if loaded {
		for _, name := range fields.FeatureOrder {
			raw := r.PostFormValue(name)
			s.controller.SetValue(name, form.CoerceValue(fields.MetaFor(name), raw))
		}
		s.controller.Submit(r.Context())
	}

	s.renderPage(w, r)
}

func (s *formServer) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.controller.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *formServer) renderPage(w http.ResponseWriter, r *http.Request) {
	fields, _ := s.controller.Schema()
	state := s.controller.State()

	page, err := s.renderer.Render(r.Context(), fields, render.RenderOptions{
		Values:  s.controller.Values(),
		Error:   state.Error,
		Loading: state.Loading,
		Result:  state.Result,
		Metrics: s.controller.Metrics(),
	})
	if err != nil {
		log.Printf("render: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	if _, err := w.Write(page); err != nil {
		log.Printf("write response: %v", err)
	}
}

func loadLocalSchema(ctx context.Context, path, operationID string) (schema.FieldSchema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.FieldSchema{}, err
	}
	if openapi.Detect(raw) {
		return openapi.FieldSchemaFromDocument(ctx, raw, operationID)
	}
	return schema.ParseDocument(raw)
}
