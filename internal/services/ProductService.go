package services

import (
	"context"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/storage"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
)

type ProductServiceInterface interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, name, price string, image *multipart.FileHeader) (*models.Product, error)
}

type ProductService struct {
	store   storage.StoreInterface
	media   MediaServiceInterface
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewProductService(store storage.StoreInterface, media MediaServiceInterface, metrics providers.MetricsProviderInterface) ProductServiceInterface {
	return &ProductService{
		store:   store,
		media:   media,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return storage.ReadList[*models.Product](ctx, s.store, storage.Products)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperr.NotFound("product")
}

func validatePrice(price string) error {
	v, err := strconv.ParseFloat(price, 64)
	if err != nil || v < 0 {
		return apperr.BadRequest("price must be a non-negative number", err)
	}
	return nil
}

// Create stores the image first and then appends the product.
func (s *ProductService) Create(ctx context.Context, name, price string, image *multipart.FileHeader) (*models.Product, error) {
	name = strings.TrimSpace(name)
	price = strings.TrimSpace(price)
	if name == "" || price == "" || image == nil {
		return nil, apperr.BadRequest("name, price and image are required", nil)
	}
	if len(name) > 100 {
		return nil, apperr.BadRequest("name must be at most 100 characters", nil)
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	imagePath, err := s.media.SaveProductImage(image)
	if err != nil {
		return nil, err
	}

	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:    models.NewProductID(name, s.now()),
		Name:  name,
		Price: price,
		Image: imagePath,
	}
	products = append(products, product)

	if err = storage.WriteList(ctx, s.store, storage.Products, products); err != nil {
		return nil, err
	}
	s.metrics.SetRecordsTotal(string(storage.Products), len(products))
	return product, nil
}
