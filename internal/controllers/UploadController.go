package controllers

import (
	"kinstore/internal/apperr"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"net/http"
)

type UploadController struct {
	logger   providers.Logger
	media    services.MediaServiceInterface
	maxBytes int64
}

type uploadResponse struct {
	Path string `json:"path"`
}

func NewUploadController(logger providers.Logger, media services.MediaServiceInterface) *UploadController {
	return &UploadController{
		logger:   logger,
		media:    media,
		maxBytes: media.MaxSize(services.MediaVideo) + maxRequestBodySize,
	}
}

func (uc *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, uc.maxBytes); err != nil {
		writeUploadError(w, r, uc.logger, err)
		return
	}

	files := r.MultipartForm.File["file"]
	kindValue := r.FormValue("type")
	if len(files) == 0 || kindValue == "" {
		writeUploadError(w, r, uc.logger, apperr.BadRequest("file and type are required", nil))
		return
	}
	kind, ok := services.ParseMediaKind(kindValue)
	if !ok {
		writeUploadError(w, r, uc.logger, apperr.BadRequest("type must be image, video or thumbnail", nil))
		return
	}

	path, err := uc.media.Upload(kind, files[0])
	if err != nil {
		writeUploadError(w, r, uc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Path: path})
}
