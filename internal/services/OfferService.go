package services

import (
	"context"
	"fmt"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/storage"
	"kinstore/internal/structures"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
)

type OfferServiceInterface interface {
	List(ctx context.Context) ([]*models.Offer, error)
	Active(ctx context.Context) ([]*models.Offer, error)
	Get(ctx context.Context, id string) (*models.Offer, error)
	Upsert(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	ReplaceAll(ctx context.Context, offers []*models.Offer) error
	Carousel(ctx context.Context) (*models.CarouselFeed, error)
}

type OfferService struct {
	store    storage.StoreInterface
	metrics  providers.MetricsProviderInterface
	interval time.Duration
	now      func() time.Time
}

func NewOfferService(conf *structures.Config, store storage.StoreInterface, metrics providers.MetricsProviderInterface) OfferServiceInterface {
	interval := conf.Offers.CarouselInterval
	if interval <= 0 {
		interval = 8 * time.Second
	}
	return &OfferService{
		store:    store,
		metrics:  metrics,
		interval: interval,
		now:      time.Now,
	}
}

// ValidateOffer checks required fields, lengths and that the window is
// parseable and ordered.
func ValidateOffer(offer *models.Offer) error {
	v := validate.Struct(offer)
	if !v.Validate() {
		return apperr.BadRequest(v.Errors.One(), nil)
	}
	start, end, err := offer.Window()
	if err != nil {
		return apperr.BadRequest("startDate and endDate must be valid dates", err)
	}
	if start.After(end) {
		return apperr.BadRequest("startDate must not be after endDate", nil)
	}
	return nil
}

func (s *OfferService) List(ctx context.Context) ([]*models.Offer, error) {
	return storage.ReadList[*models.Offer](ctx, s.store, storage.Offers)
}

func (s *OfferService) Active(ctx context.Context) ([]*models.Offer, error) {
	offers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	active := make([]*models.Offer, 0, len(offers))
	for _, o := range offers {
		if models.IsOfferActive(o, now) {
			active = append(active, o)
		}
	}
	return active, nil
}

func (s *OfferService) Get(ctx context.Context, id string) (*models.Offer, error) {
	offers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, apperr.NotFound("offer")
}

func (s *OfferService) stamp(offer *models.Offer) {
	ts := s.now().UTC().Format(time.RFC3339)
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.CreatedAt == "" {
		offer.CreatedAt = ts
	}
	if offer.UpdatedAt == "" {
		offer.UpdatedAt = ts
	}
}

// Upsert replaces the offer with the same id or appends a new one.
func (s *OfferService) Upsert(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if err := ValidateOffer(offer); err != nil {
		return nil, err
	}

	offers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	replaced := false
	if offer.ID != "" {
		for i, o := range offers {
			if o.ID != offer.ID {
				continue
			}
			if offer.CreatedAt == "" {
				offer.CreatedAt = o.CreatedAt
			}
			if offer.UpdatedAt == "" || offer.UpdatedAt == o.UpdatedAt {
				offer.UpdatedAt = s.now().UTC().Format(time.RFC3339)
			}
			offers[i] = offer
			replaced = true
			break
		}
	}
	s.stamp(offer)
	if !replaced {
		offers = append(offers, offer)
	}

	if err = storage.WriteList(ctx, s.store, storage.Offers, offers); err != nil {
		return nil, err
	}
	s.metrics.SetRecordsTotal(string(storage.Offers), len(offers))
	return offer, nil
}

// ReplaceAll writes the whole collection. Every offer is validated first so a
// bad entry leaves the stored list untouched.
func (s *OfferService) ReplaceAll(ctx context.Context, offers []*models.Offer) error {
	seen := make(map[string]struct{}, len(offers))
	for i, o := range offers {
		if o == nil {
			return apperr.BadRequest(fmt.Sprintf("offer %d is empty", i), nil)
		}
		if err := ValidateOffer(o); err != nil {
			appErr := apperr.From(err)
			return apperr.BadRequest(fmt.Sprintf("offer %d: %s", i, appErr.Message), appErr.Err)
		}
		s.stamp(o)
		if _, dup := seen[o.ID]; dup {
			return apperr.BadRequest(fmt.Sprintf("duplicate offer id %s", o.ID), nil)
		}
		seen[o.ID] = struct{}{}
	}

	if err := storage.WriteList(ctx, s.store, storage.Offers, offers); err != nil {
		return err
	}
	s.metrics.SetRecordsTotal(string(storage.Offers), len(offers))
	return nil
}

func (s *OfferService) Carousel(ctx context.Context) (*models.CarouselFeed, error) {
	active, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	return &models.CarouselFeed{
		IntervalMs: s.interval.Milliseconds(),
		Offers:     active,
	}, nil
}
