package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heilocal/feedmap/internal/feedsync"
	"github.com/heilocal/feedmap/internal/timer"
)

type ctxKey int

const ctxKeySession ctxKey = iota

func sessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Get(chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(ctxKeySession).(*Session)
}

// onSession runs fn on the request's session and returns the resulting
// view. It writes the error response itself and reports false on failure.
func onSession(w http.ResponseWriter, r *http.Request, fn func(*feedsync.Coordinator)) (feedsync.View, bool) {
	var view feedsync.View
	err := sessionFrom(r).Do(r.Context(), func(c *feedsync.Coordinator) {
		if fn != nil {
			fn(c)
		}
		view = c.View()
	})
	switch {
	case errors.Is(err, timer.ErrLoopClosed):
		writeError(w, http.StatusNotFound, "session closed")
		return feedsync.View{}, false
	case err != nil:
		// fn may still run on the loop later; view is not ours to read.
		writeError(w, http.StatusServiceUnavailable, "session busy")
		return feedsync.View{}, false
	}
	return view, true
}
