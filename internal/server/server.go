package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/cliniclab/medscreen/internal/api"
	"github.com/cliniclab/medscreen/internal/config"
	"github.com/cliniclab/medscreen/internal/disease"
	"github.com/cliniclab/medscreen/internal/modelstore"
	"github.com/cliniclab/medscreen/internal/predict"
)

//go:embed static/*
var staticFS embed.FS

// Server holds all the components for the web application
type Server struct {
	cfg        config.Config
	httpServer *http.Server
	router     *mux.Router
	store      *modelstore.Store
	dispatcher *predict.Dispatcher
}

// New creates a Server with the model store opened and all routes registered.
// A degraded store is not fatal: the app starts and reports which screens are
// unavailable.
func New(cfg config.Config) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	store, err := modelstore.Open(cfg.ModelsDir)
	if err != nil {
		log.Printf("Warning: model store degraded: %v", err)
	}
	s.store = store
	s.dispatcher = predict.New(predict.StoreSource(store))
	log.Printf("Models loaded: %d of %d", store.Loaded(), len(disease.All()))

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// API routes
	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiHandler := api.NewHandler(s.store, s.dispatcher, s.cfg)
	apiHandler.RegisterRoutes(apiRouter)

	// Static frontend files (embedded)
	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("Warning: Could not load embedded static files: %v", err)
		return
	}

	// SPA fallback: serve index.html for any non-API route
	fileServer := http.FileServer(http.FS(staticContent))
	s.router.PathPrefix("/").Handler(spaHandler{staticContent: staticContent, fileServer: fileServer})
}

// Handler returns the full middleware-wrapped handler, exposed for tests
func (s *Server) Handler() http.Handler {
	return Chain(Recovery, RequestLogger)(s.router)
}

// Addr returns the address the server binds
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Start begins listening for HTTP connections
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server listening on http://%s", s.Addr())
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// spaHandler serves the SPA, falling back to index.html for client-side routing
type spaHandler struct {
	staticContent fs.FS
	fileServer    http.Handler
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" {
		path = "index.html"
	}

	// fs.FS paths must not have a leading slash
	cleanPath := strings.TrimPrefix(path, "/")

	_, err := fs.Stat(h.staticContent, cleanPath)
	if err != nil {
		// File not found, serve index.html for SPA routing
		r.URL.Path = "/"
	}

	h.fileServer.ServeHTTP(w, r)
}
