package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"discovertz.org/tz-web/internal/catalog"
	"discovertz.org/tz-web/internal/content"
	"discovertz.org/tz-web/internal/contrib"
	"discovertz.org/tz-web/internal/format"
	mw "discovertz.org/tz-web/internal/middleware"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentPath  = "content"
	// devMode is set in main() from TZWEB_DEV (preferred) or DEV.
	devMode   bool
	tmplCache *template.Template

	logger        *zap.Logger
	catalogClient *catalog.Client
	contribClient *contrib.Client
	contentStore  *content.Store
)

func main() {
	var (
		addr       string
		tmplPath   string
		pubPath    string
		contentDir string
	)
	// Port resolution: prefer TZWEB_PORT, then Cloud Run's PORT, else 8080.
	port := os.Getenv("TZWEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contentDir, "content", contentPath, "markdown content directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	contentPath = contentDir

	devMode = os.Getenv("TZWEB_DEV") != "" || os.Getenv("DEV") != ""

	var err error
	logger, err = newLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Mock-only mode is fixed at startup; the adapter never consults a
	// mutable global.
	mockOnly := os.Getenv("TZWEB_MOCK") != ""
	catalogClient = catalog.New(catalog.Config{
		BaseURL:  os.Getenv("TZWEB_API_BASE"),
		MockOnly: mockOnly,
		Logger:   logger,
	})
	owner, repo := splitRepo(os.Getenv("TZWEB_GITHUB_REPO"))
	contribClient = contrib.New(contrib.Config{Owner: owner, Repo: repo, Logger: logger})
	contentStore = content.NewStore(contentPath)

	if !devMode {
		// Parse templates once in production.
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("web listening",
		zap.String("addr", addr),
		zap.Bool("dev", devMode),
		zap.Bool("mock_only", mockOnly),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that
	// controls those headers.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/regions", RegionsHandler)
	r.Get("/attractions", AttractionsHandler)
	r.Get("/attractions/{slug}", AttractionHandler)
	r.Get("/contributors", ContributorsHandler)
	r.Get("/about", AboutHandler)
	r.Get("/travel-tips/{slug}", TravelTipHandler)

	return r
}

// newLogger builds a production JSON logger honoring LOG_LEVEL.
func newLogger() (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))))); err != nil {
		_ = level.UnmarshalText([]byte("info"))
	}
	cfg := zap.Config{
		Level:    level,
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",
			TimeKey:    "timestamp",
			LevelKey:   "severity",
			EncodeTime: zapcore.RFC3339NanoTimeEncoder,
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(strings.ToUpper(l.String()))
			},
		},
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	return cfg.Build()
}

func splitRepo(v string) (owner, repo string) {
	owner, repo = "discover-tz", "tz-web"
	v = strings.TrimSpace(v)
	if v == "" {
		return owner, repo
	}
	parts := strings.SplitN(v, "/", 2)
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1]
	}
	return owner, repo
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":      time.Now,
		"fmtDate":  format.FmtDate,
		"fmtCount": format.FmtCount,
	}
	// Recursively discover and parse all .tmpl files; ParseGlob has no **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}
