package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	mem "livestock-management/internal/adapters/storage/memory"
	pg "livestock-management/internal/adapters/storage/postgres"
	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/backups"
	"livestock-management/internal/domain/breeding"
	"livestock-management/internal/domain/grants"
	"livestock-management/internal/domain/lots"
	"livestock-management/internal/domain/notifications"
	"livestock-management/internal/domain/records"
	"livestock-management/internal/domain/species"
	"livestock-management/internal/middleware"
	"livestock-management/internal/platform/logger"
	"livestock-management/internal/ports/auth"
	"livestock-management/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "livestock-management/docs"
)

// grantNotifier conecta grants con la bandeja de notificaciones.
type grantNotifier struct {
	svc *notifications.Service
}

func (n grantNotifier) NotifyInvite(ctx context.Context, granteeUserID, ownerUserID string) {
	_, _ = n.svc.Notify(ctx, granteeUserID, notifications.KindGrantInvite,
		"Invitación a hato compartido",
		"El usuario "+ownerUserID+" te compartió el acceso a su hato.")
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: resolver de capabilities de plan. Nil = sin gating.
	Capabilities capabilities.Resolver

	// Opcional: catálogo de especies. Nil = defaults (o SPECIES_CONFIG).
	Catalog *species.Config

	// Opcional: logger. Nil = desde env.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	catalog := opts.Catalog
	if catalog == nil {
		loaded, err := species.LoadFromEnv()
		if err != nil {
			log.Warn("species config load failed, using defaults", map[string]any{
				"error": err.Error(),
			})
			loaded = species.Defaults()
		}
		catalog = loaded
	}

	var (
		animalsRepo       animals.Repository
		recordsRepo       records.Repository
		grantsRepo        grants.Repository
		lotsRepo          lots.Repository
		notificationsRepo notifications.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Error("postgres open failed, falling back to memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		animalsRepo = pg.NewAnimalsRepo(db)
		recordsRepo = pg.NewRecordsRepo(db)
		grantsRepo = pg.NewGrantsRepo(db)
		lotsRepo = pg.NewLotsRepo(db)
		notificationsRepo = pg.NewNotificationsRepo(db)
	} else {
		animalsRepo = mem.NewAnimalsRepo()
		recordsRepo = mem.NewRecordsRepo()
		grantsRepo = mem.NewGrantsRepo()
		lotsRepo = mem.NewLotsRepo()
		notificationsRepo = mem.NewNotificationsRepo()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalsRepo, catalog)
	recordsSvc := records.NewService(recordsRepo)
	notificationsSvc := notifications.NewService(notificationsRepo)
	grantsSvc := grants.NewService(grantsRepo).WithNotifier(grantNotifier{svc: notificationsSvc})
	lotsSvc := lots.NewService(lotsRepo, animalsSvc)
	backupsSvc := backups.NewService(animalsSvc, lotsSvc, recordsSvc)

	analyzer := breeding.NewAnalyzer(catalog, animalsSvc, log.With(map[string]any{
		"component": "breeding",
	}))

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, grantsSvc)
	records.RegisterRoutes(r, recordsSvc, animalsSvc, grantsSvc)
	grants.RegisterRoutes(r, grantsSvc)
	lots.RegisterRoutes(r, lotsSvc)
	notifications.RegisterRoutes(r, notificationsSvc)
	backups.RegisterRoutes(r, backupsSvc)
	breeding.RegisterRoutes(r, analyzer, animalsSvc, grantsSvc, opts.Capabilities)

	return r
}
