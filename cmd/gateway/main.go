package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/evalvotech/exam-generator/internal/api/http"
	"github.com/evalvotech/exam-generator/internal/audit"
	auth "github.com/evalvotech/exam-generator/internal/auth/middleware"
	"github.com/evalvotech/exam-generator/internal/config"
	"github.com/evalvotech/exam-generator/internal/db"
	"github.com/evalvotech/exam-generator/internal/generator"
	"github.com/evalvotech/exam-generator/internal/paper"
	"github.com/evalvotech/exam-generator/internal/question"
	"github.com/evalvotech/exam-generator/internal/rbac"
	"github.com/evalvotech/exam-generator/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := question.NewSQLStore(dbh, cfg.DBDriver)

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	events := audit.NewEventRepo(dbh)

	gen := generator.New(store, store, paper.NewRenderer())
	gen.Archive = bs
	gen.Audit = events

	// --- Auth (static users, HMAC JWT) ---
	users := append([]config.User{{
		Name:     cfg.AdminUser,
		PassHash: cfg.AdminPassHash,
		Role:     "admin",
		Org:      cfg.DefaultOrgID,
	}}, cfg.Users...)
	authSvc := auth.NewAuthService(cfg.AuthSecret, users)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("exam:generate")).
			Post("/exams/generate", api.GenerateExamHandler(gen))

		pr.With(rbac.Require("question:import")).
			Post("/questions/import", api.ImportQuestionsHandler(store))
		pr.With(rbac.Require("question:view")).
			Get("/questions", api.ListQuestionsHandler(store))

		pr.With(rbac.Require("batch:view")).
			Get("/batches", api.ListBatchesHandler(store))
		pr.With(rbac.Require("batch:view")).
			Get("/batches/{batchID}", api.GetBatchHandler(store))

		pr.With(rbac.Require("paper:view")).Route("/papers", func(ar chi.Router) {
			api.MountPapers(ar, bs, store)
		})

		pr.With(rbac.Require("event:view")).
			Get("/events", api.ListEventsHandler(events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
