package controllers

import (
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/services"
	"net/http"
)

const chatCacheKey = "chat"

type ChatController struct {
	logger  providers.Logger
	service services.ChatServiceInterface
	cache   providers.CacheProviderInterface
}

type okResponse struct {
	OK bool `json:"ok"`
}

func NewChatController(logger providers.Logger, service services.ChatServiceInterface, cache providers.CacheProviderInterface) *ChatController {
	return &ChatController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (cc *ChatController) Get(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, r, cc.cache, cc.logger, chatCacheKey, func() (any, error) {
		return cc.service.Get(r.Context())
	})
}

func (cc *ChatController) Apply(w http.ResponseWriter, r *http.Request) {
	var action models.ChatAction
	if err := decodeJSON(w, r, &action); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	if err := cc.service.Apply(r.Context(), &action); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	cc.cache.Del(chatCacheKey)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
