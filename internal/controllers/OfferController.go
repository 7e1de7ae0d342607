package controllers

import (
	"bytes"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

const (
	offersCacheKey   = "offers"
	activeCacheKey   = "offers:active"
	carouselCacheKey = "offers:carousel"
)

type OfferController struct {
	logger  providers.Logger
	service services.OfferServiceInterface
	cache   providers.CacheProviderInterface
}

type offerSavedResponse struct {
	Success bool          `json:"success"`
	Offer   *models.Offer `json:"offer,omitempty"`
}

func NewOfferController(logger providers.Logger, service services.OfferServiceInterface, cache providers.CacheProviderInterface) *OfferController {
	return &OfferController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (oc *OfferController) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active") == "true" {
		serveFromCacheOrCompute(w, r, oc.cache, oc.logger, activeCacheKey, func() (any, error) {
			return oc.service.Active(r.Context())
		})
		return
	}
	serveFromCacheOrCompute(w, r, oc.cache, oc.logger, offersCacheKey, func() (any, error) {
		return oc.service.List(r.Context())
	})
}

func (oc *OfferController) Get(w http.ResponseWriter, r *http.Request) {
	offer, err := oc.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, oc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (oc *OfferController) Carousel(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, r, oc.cache, oc.logger, carouselCacheKey, func() (any, error) {
		return oc.service.Carousel(r.Context())
	})
}

// Save upserts a single offer, or replaces the whole collection when the body
// is an array.
func (oc *OfferController) Save(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, oc.logger, err)
		return
	}

	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var offers []*models.Offer
		if err = json.Unmarshal(trimmed, &offers); err != nil {
			writeError(w, r, oc.logger, apperr.BadRequest("invalid JSON body", err))
			return
		}
		if err = oc.service.ReplaceAll(r.Context(), offers); err != nil {
			writeError(w, r, oc.logger, err)
			return
		}
		oc.invalidate()
		oc.logger.Infof(providers.TypePost, "Offers replaced, %d stored", len(offers))
		writeJSON(w, http.StatusOK, offerSavedResponse{Success: true})

	case len(trimmed) > 0 && trimmed[0] == '{':
		var offer models.Offer
		if err = json.Unmarshal(trimmed, &offer); err != nil {
			writeError(w, r, oc.logger, apperr.BadRequest("invalid JSON body", err))
			return
		}
		saved, err := oc.service.Upsert(r.Context(), &offer)
		if err != nil {
			writeError(w, r, oc.logger, err)
			return
		}
		oc.invalidate()
		writeJSON(w, http.StatusOK, offerSavedResponse{Success: true, Offer: saved})

	default:
		writeError(w, r, oc.logger, apperr.BadRequest("body must be an offer or a list of offers", nil))
	}
}

func (oc *OfferController) invalidate() {
	oc.cache.Del(offersCacheKey, activeCacheKey, carouselCacheKey)
}
