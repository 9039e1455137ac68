package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status reports whether the object-store backend is currently reachable.
func (a *App) Status(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Sync.Status())
}
