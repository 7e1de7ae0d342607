package controllers

import (
	"kinstore/internal/models"
	"kinstore/internal/services"
	"kinstore/internal/testutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductController(t *testing.T) (*ProductController, *testutil.MockCache, string) {
	store, conf := newTestStore(t)
	metrics := testutil.NewMockMetrics()
	media := services.NewMediaService(conf, &mockLogger{}, metrics)
	svc := services.NewProductService(store, media, metrics)
	cache := testutil.NewMockCache()
	return NewProductController(&mockLogger{}, svc, media, cache), cache, conf.Upload.PublicDir
}

func TestProductController_CreateAndList(t *testing.T) {
	pc, cache, publicDir := newProductController(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/products",
		map[string]string{"name": "Arepa Mix", "price": "4.25"},
		testutil.FormFile{Field: "image", Name: "arepa mix.png", Contents: testutil.PNG(256)})
	rr := httptest.NewRecorder()
	pc.Create(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var created productCreatedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.True(t, strings.HasSuffix(created.Product.ID, "-arepamix"))
	assert.True(t, strings.HasPrefix(created.Product.Image, "/images/"))
	assert.Equal(t, []string{productsCacheKey}, cache.Deleted)

	_, err := os.Stat(filepath.Join(publicDir, strings.TrimPrefix(created.Product.Image, "/")))
	assert.NoError(t, err)

	rr = httptest.NewRecorder()
	pc.List(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	var list []models.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Arepa Mix", list[0].Name)
}

func TestProductController_ListEmpty(t *testing.T) {
	pc, _, _ := newProductController(t)

	rr := httptest.NewRecorder()
	pc.List(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestProductController_CreateMissingFields(t *testing.T) {
	pc, _, _ := newProductController(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/products", map[string]string{"name": "Arepa Mix"})
	rr := httptest.NewRecorder()
	pc.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProductController_CreateNotMultipart(t *testing.T) {
	pc, _, _ := newProductController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	pc.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProductController_CreateOversizedImage(t *testing.T) {
	pc, cache, publicDir := newProductController(t)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/products",
		map[string]string{"name": "Big", "price": "1"},
		testutil.FormFile{Field: "image", Name: "big.png", Contents: testutil.PNG(3 << 20)})
	rr := httptest.NewRecorder()
	pc.Create(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, cache.Deleted)
	_, err := os.Stat(filepath.Join(publicDir, "images"))
	assert.True(t, os.IsNotExist(err))
}

func TestProductController_GetNotFound(t *testing.T) {
	pc, _, _ := newProductController(t)

	rr := httptest.NewRecorder()
	pc.Get(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/x", nil), "id", "x"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rr.Body.String())
}
