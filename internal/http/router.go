package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mycloudcondo/kuyan/internal/http/entry"
	"github.com/mycloudcondo/kuyan/internal/http/networth"
	"github.com/mycloudcondo/kuyan/internal/http/snapshot"
	"github.com/mycloudcondo/kuyan/internal/http/transfer"
)

func New(
	entriesV1 *entry.Handler,
	snapshotsV1 *snapshot.Handler,
	networthV1 *networth.Handler,
	transferV1 *transfer.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/snapshots", snapshotsV1.Routes)

		r.Route("/networth", networthV1.Routes)

		transferV1.Routes(r)
	})

	return router
}
