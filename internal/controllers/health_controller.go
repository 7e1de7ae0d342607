package controllers

import (
	"fmt"
	"kinstore/internal/storage"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	store     storage.StoreInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string            `json:"status"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	StorageDriver string            `json:"storage_driver"`
	Resources     map[string]string `json:"resources"`
}

// Health reads every document. An unreadable or corrupt one answers 503.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		StorageDriver: hc.store.Driver(),
		Resources:     make(map[string]string, len(storage.AllResources())),
	}

	status := http.StatusOK
	for _, res := range storage.AllResources() {
		raw, err := hc.store.ReadRaw(r.Context(), res)
		if err != nil || !json.Valid(raw) {
			resp.Resources[string(res)] = "error"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Resources[string(res)] = "ok"
	}

	writeJSON(w, status, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.StoreInterface) *HealthController {
	return &HealthController{
		store:     store,
		startTime: time.Now(),
	}
}
