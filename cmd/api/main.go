package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"livestock-management/internal/adapters/auth/gotrue"
	"livestock-management/internal/adapters/capabilities/plansfeatures"
	"livestock-management/internal/platform/logger"
	"livestock-management/internal/ports/auth"
	"livestock-management/internal/ports/capabilities"
	"livestock-management/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifierFromEnv(log),
		Capabilities: capabilitiesFromEnv(log),
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// verifierFromEnv arma el verifier GoTrue si hay credenciales.
// Sin credenciales => nil => modo dev (X-Debug-User-ID).
func verifierFromEnv(log logger.Logger) auth.AuthVerifier {
	baseURL := strings.TrimSpace(os.Getenv("GOTRUE_URL"))
	anonKey := strings.TrimSpace(os.Getenv("GOTRUE_ANON_KEY"))
	if baseURL == "" || anonKey == "" {
		log.Warn("gotrue not configured, auth in dev mode", nil)
		return nil
	}

	client, err := gotrue.NewClient(gotrue.Config{
		BaseURL: baseURL,
		AnonKey: anonKey,
	})
	if err != nil {
		log.Error("gotrue client init failed, auth in dev mode", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	return gotrue.NewVerifier(client)
}

// capabilitiesFromEnv arma el resolver de plans-features.
// ALLOW_ALL_CAPABILITIES=true lo deja en modo permitir-todo para dev.
func capabilitiesFromEnv(log logger.Logger) capabilities.Resolver {
	client, err := plansfeatures.NewClient(plansfeatures.Config{
		BaseURL: os.Getenv("PLANS_FEATURES_URL"),
		APIKey:  os.Getenv("PLANS_FEATURES_API_KEY"),
	})
	if err != nil {
		log.Error("plans-features client init failed", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	resolver := plansfeatures.NewResolver(client)
	if !client.IsConfigured() && !resolver.AllowAll() {
		// Sin upstream ni override, gatear sería bloquear todo en dev.
		log.Warn("plans-features not configured, capability gating disabled", nil)
		return nil
	}

	return resolver
}
