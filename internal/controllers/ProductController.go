package controllers

import (
	"errors"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const productsCacheKey = "products"

type ProductController struct {
	logger   providers.Logger
	service  services.ProductServiceInterface
	cache    providers.CacheProviderInterface
	maxBytes int64
}

type productCreatedResponse struct {
	Success bool            `json:"success"`
	Product *models.Product `json:"product"`
}

func NewProductController(logger providers.Logger, service services.ProductServiceInterface, media services.MediaServiceInterface, cache providers.CacheProviderInterface) *ProductController {
	return &ProductController{
		logger:   logger,
		service:  service,
		cache:    cache,
		maxBytes: media.MaxSize(services.MediaImage) + maxRequestBodySize,
	}
}

func (pc *ProductController) List(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, r, pc.cache, pc.logger, productsCacheKey, func() (any, error) {
		return pc.service.List(r.Context())
	})
}

func (pc *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := pc.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUploadError(w, r, pc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, pc.maxBytes); err != nil {
		writeError(w, r, pc.logger, err)
		return
	}

	var image *multipart.FileHeader
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		image = files[0]
	}

	product, err := pc.service.Create(r.Context(), r.FormValue("name"), r.FormValue("price"), image)
	if err != nil {
		writeError(w, r, pc.logger, err)
		return
	}
	pc.cache.Del(productsCacheKey)
	pc.logger.Infof(providers.TypePost, "Product %s created", product.ID)
	writeJSON(w, http.StatusOK, productCreatedResponse{Success: true, Product: product})
}

// parseMultipart caps the body at maxBytes before parsing the form.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.TooLarge("request body too large")
		}
		return apperr.BadRequest("expected a multipart form", err)
	}
	return nil
}
