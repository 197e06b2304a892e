package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the entry and user routes on r.
func RegisterRoutes(r chi.Router, entries *EntryHandler, users *UserHandler) {
	r.Route("/entries", func(r chi.Router) {
		r.Post("/", entries.CreateEntry)
		r.Get("/", entries.SearchEntries)
		r.Get("/{id}", entries.GetEntry)
		r.Put("/{id}", entries.UpdateEntry)
		r.Delete("/{id}", entries.DeleteEntry)
		r.Put("/{id}/status", entries.ChangeStatus)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", users.Register)
		r.Post("/authenticate", users.Authenticate)
		r.Get("/{id}/balance", users.GetBalance)
	})
}
