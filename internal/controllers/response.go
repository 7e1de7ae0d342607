package controllers

import (
	"errors"
	"io"
	"kinstore/internal/apperr"
	"kinstore/internal/providers"
	"net/http"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type uploadErrorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeError maps err to its status. Internal causes are logged and replaced by
// a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	appErr := apperr.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	}
	writeJSON(w, appErr.Status, errorResponse{Success: false, Message: appErr.Message})
}

// writeUploadError uses the {error} shape the upload and product clients expect.
func writeUploadError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	appErr := apperr.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Errorf(providers.TypePost, "%s %s: %s", r.Method, r.URL.Path, err)
	}
	writeJSON(w, appErr.Status, uploadErrorResponse{Error: appErr.Message})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.TooLarge("request body too large")
		}
		return nil, apperr.BadRequest("unable to read request body", err)
	}
	return body, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, dst); err != nil {
		return apperr.BadRequest("invalid JSON body", err)
	}
	return nil
}

// serveFromCacheOrCompute answers GETs from the response cache, filling it on
// a miss. Writers drop the affected keys.
func serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cache providers.CacheProviderInterface, logger providers.Logger, cacheKey string, compute func() (any, error)) {
	if data, ok := cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, r, logger, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		writeError(w, r, logger, apperr.Internal("unable to encode response", err))
		return
	}

	cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
