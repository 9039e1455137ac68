package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"studio/internal/collection"
	"studio/internal/domain"
	"studio/internal/gallery"
	"studio/internal/prompt"
	"studio/internal/providers/image"
	promptproviders "studio/internal/providers/prompt"
	"studio/internal/storage"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Log        zerolog.Logger
	Compiler   prompt.Compiler
	Generator  image.Generator
	Sync       *gallery.Synchronizer
	Collection *collection.Builder
	Decoder    promptproviders.Decoder
	Optimizer  promptproviders.Optimizer
	Reverse    promptproviders.ReverseEngineer
	Local      *storage.LocalStore
	Rand       *rand.Rand

	mu    sync.Mutex
	state domain.CreatorState
}

// NewApp restores the creator session from local storage, or starts from
// the defaults on first run.
func NewApp(log zerolog.Logger, local *storage.LocalStore) *App {
	a := &App{
		Log:   log,
		Local: local,
		state: domain.DefaultCreatorState(),
	}
	if local != nil {
		var saved domain.CreatorState
		err := local.ReadDoc(context.Background(), storage.DocCreatorState, &saved)
		switch {
		case err == nil:
			saved.Settings.Normalize()
			a.state = saved
		case !errors.Is(err, os.ErrNotExist):
			log.Warn().Err(err).Msg("restore creator state")
		}
	}
	return a
}

// State returns a copy of the current creator session.
func (a *App) State() domain.CreatorState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// mutateState applies fn to the session under the lock and persists the
// result. Persistence failures are logged, not surfaced; the in-memory
// session stays authoritative.
func (a *App) mutateState(ctx context.Context, fn func(*domain.CreatorState)) domain.CreatorState {
	a.mu.Lock()
	fn(&a.state)
	snapshot := a.state
	a.mu.Unlock()

	if a.Local != nil {
		if err := a.Local.WriteDoc(ctx, storage.DocCreatorState, snapshot); err != nil {
			a.Log.Warn().Err(err).Msg("persist creator state")
		}
	}
	return snapshot
}

// activePrompt resolves the prompt the generate call would use right now.
func (a *App) activePrompt(state domain.CreatorState) string {
	if state.UseFreeText && state.FreeText != "" {
		return state.FreeText
	}
	return a.Compiler.Compile(state.Settings)
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}
