// Package server wires the dataset service from configuration.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	// Postgres driver, registered for database/sql.
	_ "github.com/lib/pq"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/audit"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/auth"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/database/migrate"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dataset"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/health"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/httpapi"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/platform"
	registrypkg "github.com/ryansupak-avanade-001/osdu-dataset/pkg/registry"
	registrypg "github.com/ryansupak-avanade-001/osdu-dataset/pkg/registry/postgres"
	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/storage"
)

// Server is the assembled dataset service.
type Server struct {
	cfg     *platform.Config
	log     *slog.Logger
	http    *http.Server
	checker *health.Checker
	db      *sql.DB
}

// New builds a Server from configuration.
func New(cfg *platform.Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}

	recordStore, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating record store client: %w", err)
	}

	var db *sql.DB
	var resolver registrypkg.Resolver
	if cfg.Database.Enabled {
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

		if err := migrate.Run(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}

		resolver = registrypkg.NewCached(registrypg.New(db), cfg.Database.CacheTTL)
		log.Info("dms registry backed by database", "cache_ttl", cfg.Database.CacheTTL)
	} else {
		static := registrypkg.NewStatic()
		for pattern, props := range cfg.Dms.Backends {
			if err := static.Register(pattern, props); err != nil {
				return nil, fmt.Errorf("registering dms backend: %w", err)
			}
		}
		resolver = static
		log.Info("dms registry loaded from config", "backends", len(cfg.Dms.Backends))
	}

	factory := dms.NewClientFactory(cfg.Dms.Client)
	dmsService := dataset.NewDmsService(recordStore, resolver, factory)

	validator, err := dataset.NewValidator(dataset.ValidationMode(cfg.Validation.Mode), recordStore)
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	registryService := dataset.NewRegistryService(recordStore, validator)

	authenticators, err := buildAuthenticators(cfg)
	if err != nil {
		return nil, err
	}

	checker := health.NewChecker()
	handler := httpapi.NewHandler(dmsService, registryService, audit.NewLogger(log), log)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.HandleFunc("GET /healthz", checker.LivenessHandler())
	mux.HandleFunc("GET /readyz", checker.ReadinessHandler())

	chain := httpapi.RequestID(httpapi.Auth(authenticators, cfg.Auth.AllowAnonymous, log)(mux))

	return &Server{
		cfg:     cfg,
		log:     log,
		checker: checker,
		db:      db,
		http: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           chain,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func buildAuthenticators(cfg *platform.Config) ([]httpapi.Authenticator, error) {
	var authenticators []httpapi.Authenticator

	if cfg.Auth.JWT.Enabled {
		jwtAuth, err := auth.NewJWTAuthenticator(auth.JWTConfig{
			Issuer:     cfg.Auth.JWT.Issuer,
			SigningKey: []byte(cfg.Auth.JWT.SigningKey),
		})
		if err != nil {
			return nil, fmt.Errorf("creating jwt authenticator: %w", err)
		}
		authenticators = append(authenticators, jwtAuth)
	}
	if cfg.Auth.APIKeys.Enabled {
		authenticators = append(authenticators,
			auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{Keys: cfg.Auth.APIKeys.Keys}))
	}
	return authenticators, nil
}

// Start serves HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.checker.SetReady()
	s.log.Info("dataset service listening",
		"name", s.cfg.Server.Name,
		"version", s.cfg.Server.Version,
		"address", s.cfg.Server.Address,
	)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and releases resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.checker.SetDraining()
	err := s.http.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}
