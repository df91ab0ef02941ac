// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milchinskiy/linelog/filter"
	"github.com/milchinskiy/linelog/logger"
	"github.com/milchinskiy/linelog/recovery"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// LevelBody is the body of GET and PUT /level.
type LevelBody struct {
	Level *logger.Level `json:"level"`
}

// FilterBody is the body of GET and PUT /filter.
type FilterBody struct {
	Expr string `json:"expr"`
}

// ErrorBody is returned with every non-2xx response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type handler struct {
	lg *logger.Logger
}

// NewRouter returns the runtime control API for lg:
//
//	GET    /settings   current settings
//	PATCH  /settings   change some settings
//	GET    /level      current level
//	PUT    /level      set the level
//	GET    /filter     current filter expression
//	PUT    /filter     compile and install a filter
//	DELETE /filter     remove the filter
//
// Panics in handlers are logged through lg and answered with 500.
func NewRouter(lg *logger.Logger) http.Handler {
	h := &handler{lg: lg}

	r := chi.NewRouter()
	r.Use(recovery.Middleware(lg))

	r.Get("/settings", h.wrap(h.getSettings))
	r.Patch("/settings", h.wrap(h.patchSettings))
	r.Get("/level", h.wrap(h.getLevel))
	r.Put("/level", h.wrap(h.putLevel))
	r.Get("/filter", h.wrap(h.getFilter))
	r.Put("/filter", h.wrap(h.putFilter))
	r.Delete("/filter", h.wrap(h.deleteFilter))

	return r
}

func (h *handler) wrap(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		code := statusCode(err)
		body := ErrorBody{Error: err.Error()}
		var compileErr *filter.CompileError
		if errors.As(err, &compileErr) {
			body.Details = compileErr
		}
		if code >= http.StatusInternalServerError {
			h.lg.Group("control").Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		}
		writeJSON(w, code, body)
	}
}

func (h *handler) getSettings(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, h.lg.Settings())
	return nil
}

func (h *handler) patchSettings(w http.ResponseWriter, r *http.Request) error {
	var patch logger.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		return err
	}
	h.lg.Apply(patch)
	h.lg.Group("control").Infof("settings updated from %s", r.RemoteAddr)
	writeJSON(w, http.StatusOK, h.lg.Settings())
	return nil
}

func (h *handler) getLevel(w http.ResponseWriter, _ *http.Request) error {
	level := h.lg.Level()
	writeJSON(w, http.StatusOK, LevelBody{Level: &level})
	return nil
}

func (h *handler) putLevel(w http.ResponseWriter, r *http.Request) error {
	var body LevelBody
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	if body.Level == nil {
		return badRequest(errors.New(`missing "level"`))
	}
	h.lg.SetLevel(*body.Level)
	h.lg.Group("control").Infof("level set to %s", body.Level)
	writeJSON(w, http.StatusOK, body)
	return nil
}

// getFilter reports the expression of a filter installed here or by a
// config file. Other filter types have no source and report "".
func (h *handler) getFilter(w http.ResponseWriter, _ *http.Request) error {
	var body FilterBody
	if f, ok := h.lg.Filter().(interface{ Source() string }); ok {
		body.Expr = f.Source()
	}
	writeJSON(w, http.StatusOK, body)
	return nil
}

func (h *handler) putFilter(w http.ResponseWriter, r *http.Request) error {
	var body FilterBody
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	if body.Expr == "" {
		return badRequest(errors.New(`missing "expr"`))
	}
	f, err := filter.Compile(body.Expr)
	if err != nil {
		return badRequest(err)
	}
	h.lg.SetFilter(f)
	h.lg.Group("control").Infof("filter set to %s", body.Expr)
	writeJSON(w, http.StatusOK, body)
	return nil
}

func (h *handler) deleteFilter(w http.ResponseWriter, _ *http.Request) error {
	h.lg.SetFilter(nil)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
