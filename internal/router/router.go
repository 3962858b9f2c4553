package router

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "petdoc-id/internal/adapters/storage/memory"
	pg "petdoc-id/internal/adapters/storage/postgres"
	"petdoc-id/internal/domain/activity"
	"petdoc-id/internal/domain/documents"
	"petdoc-id/internal/domain/intake"
	"petdoc-id/internal/domain/lookup"
	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/domain/registration"
	"petdoc-id/internal/domain/session"
	"petdoc-id/internal/middleware"
	"petdoc-id/internal/platform/httpjson"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/platform/metrics"
	"petdoc-id/internal/platform/ratelimit"
	"petdoc-id/internal/ports/auth"
	"petdoc-id/internal/ports/photos"
)

// StaticPhotos es el store local, que además sirve los archivos.
type StaticPhotos interface {
	Handler() http.Handler
	PublicPath() string
}

type Options struct {
	Log logger.Logger

	AuthVerifier  auth.AuthVerifier  // puede ser nil: ninguna ruta admin pasa
	Authenticator auth.Authenticator // puede ser nil: login deshabilitado

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: contador alternativo (redis). Si no viene sale de DB o memoria.
	Counter        registration.CounterStore
	CounterBackend string

	Photos       photos.Storage
	PhotoFetcher photos.Fetcher
	Uploads      StaticPhotos

	Templates     fs.FS
	SignatureFont string
	Cover         documents.CoverConfig

	LookupPath string
	LookupTTL  time.Duration

	MaxUpload          int64
	PublicCreateLimit  int
	PublicCreateWindow time.Duration

	// nombre => check; /api/health responde 503 si alguno falla
	HealthChecks map[string]func(context.Context) error
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	var (
		petRepo      pets.Repository
		activityRepo activity.Repository
		counter      = opts.Counter
		backend      = opts.CounterBackend
	)

	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		activityRepo = pg.NewActivityRepo(opts.DB)
		if counter == nil {
			counter, backend = pg.NewCounterStore(opts.DB), "postgres"
		}
	} else {
		petRepo = mem.NewPetRepo()
		activityRepo = mem.NewActivityRepo()
		if counter == nil {
			counter, backend = mem.NewCounterStore(), "memory"
		}
	}

	fonts, err := documents.LoadFonts(opts.SignatureFont)
	if err != nil {
		return nil, err
	}

	// Services por módulo
	activitySvc := activity.NewService(activityRepo)
	codes := registration.NewService(counter, backend)
	petsSvc := pets.NewService(petRepo, codes, opts.Photos, activitySvc, log.With(logger.Fields{"module": "pets"}))
	lookupSvc := lookup.NewService(petsSvc, opts.LookupTTL)
	petsSvc.OnChange(lookupSvc.Invalidate)

	assets := documents.NewAssets(opts.Templates, opts.PhotoFetcher)
	docLog := log.With(logger.Fields{"module": "documents"})
	renderer := documents.NewRenderer(assets, fonts, docLog)
	assembler := documents.NewAssembler(assets, opts.Cover, docLog)

	limit, window := opts.PublicCreateLimit, opts.PublicCreateWindow
	if limit <= 0 {
		limit = 50
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	petsCfg := pets.HandlerConfig{MaxUpload: opts.MaxUpload}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/health", healthHandler(opts.HealthChecks))
	r.Handle("/metrics", metrics.Handler())

	if opts.Uploads != nil {
		r.Handle(strings.TrimRight(opts.Uploads.PublicPath(), "/")+"/*", opts.Uploads.Handler())
	}

	// Rutas públicas
	r.Post("/api/auth/login", loginHandler(opts.Authenticator, log))
	r.Get("/api/lookup", lookup.LookupHandler(lookupSvc))
	r.Get("/r/{code}", lookup.RedirectHandler(opts.LookupPath))

	r.Route("/api/pets", func(pr chi.Router) {
		pr.With(ratelimit.ByIP(limit, window, "public_create", log)).
			Post("/public", pets.PublicCreateHandler(petsSvc, petsCfg))

		// Rutas admin
		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireRole(auth.RoleAdmin))

			pets.RegisterAdminRoutes(ar, petsSvc, petsCfg)
			documents.RegisterRoutes(ar, petsSvc, renderer, assembler, docLog)
			ar.Get("/{id}/activity", activity.ListHandler(activitySvc, func(ctx context.Context, id string) error {
				_, err := petsSvc.GetByID(ctx, id)
				return err
			}))
		})
	})

	r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/api/intake/parse", intake.ParseHandler())

	return r, nil
}

func loginHandler(authn auth.Authenticator, log logger.Logger) http.HandlerFunc {
	if authn == nil {
		return func(w http.ResponseWriter, _ *http.Request) {
			httpjson.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "admin login is not configured"})
		}
	}
	return session.LoginHandler(authn, log)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		res := healthResponse{Status: "ok"}
		var failed error
		if len(checks) > 0 {
			res.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				res.Checks[name] = "down"
				failed = errors.Join(failed, err)
				continue
			}
			res.Checks[name] = "ok"
		}

		status := http.StatusOK
		if failed != nil {
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		httpjson.WriteJSON(w, status, res)
	}
}
