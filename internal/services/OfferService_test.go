package services

import (
	"context"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/storage"
	"kinstore/internal/testutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (storage.StoreInterface, string) {
	t.Helper()
	dir := t.TempDir()
	conf := testutil.Config(dir)
	return storage.NewStore(storage.NewFileBackend(conf.Storage), &testutil.MockLogger{}, testutil.NewMockMetrics(), testutil.NoopTracing{}), dir
}

func fixedClock(value string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return t }
}

func newOfferService(t *testing.T) (*OfferService, *testutil.MockMetrics) {
	store, dir := newTestStore(t)
	metrics := testutil.NewMockMetrics()
	svc := NewOfferService(testutil.Config(dir), store, metrics).(*OfferService)
	svc.now = fixedClock("2023-07-01T12:00:00Z")
	return svc, metrics
}

func summerOffer() *models.Offer {
	return &models.Offer{
		ID:           "1",
		Title:        "Summer Special Collection",
		Description:  "Discover our new summer items with 20% discount",
		VideoURL:     "/media/videos/summer.mp4",
		ThumbnailURL: "/media/thumbnails/summer.png",
		IsActive:     true,
		StartDate:    "2023-06-01T00:00:00.000Z",
		EndDate:      "2023-08-31T00:00:00.000Z",
		DisplayOptions: models.DisplayOptions{
			Autoplay:   true,
			Loop:       true,
			Muted:      true,
			ShowBadge:  true,
			BadgeText:  "20% OFF",
			BadgeColor: "bg-red-500",
		},
		CreatedAt: "2023-05-20T10:00:00.000Z",
		UpdatedAt: "2023-05-20T10:00:00.000Z",
	}
}

func TestOfferService_UpsertThenListRoundTrip(t *testing.T) {
	svc, metrics := newOfferService(t)
	ctx := context.Background()

	want := *summerOffer()
	_, err := svc.Upsert(ctx, summerOffer())
	require.NoError(t, err)

	offers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, want, *offers[0])
	assert.Equal(t, 1, metrics.Records["offers"])
}

func TestOfferService_UpsertFillsIDAndTimestamps(t *testing.T) {
	svc, _ := newOfferService(t)

	o := summerOffer()
	o.ID, o.CreatedAt, o.UpdatedAt = "", "", ""
	saved, err := svc.Upsert(context.Background(), o)
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "2023-07-01T12:00:00Z", saved.CreatedAt)
	assert.Equal(t, "2023-07-01T12:00:00Z", saved.UpdatedAt)
}

func TestOfferService_UpsertReplacesMatchingID(t *testing.T) {
	svc, _ := newOfferService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, summerOffer())
	require.NoError(t, err)

	edited := summerOffer()
	edited.Title = "Summer Special Collection II"
	edited.CreatedAt = ""
	_, err = svc.Upsert(ctx, edited)
	require.NoError(t, err)

	offers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "Summer Special Collection II", offers[0].Title)
	assert.Equal(t, "2023-05-20T10:00:00.000Z", offers[0].CreatedAt)
	assert.Equal(t, "2023-07-01T12:00:00Z", offers[0].UpdatedAt)
}

func TestOfferService_UpsertValidation(t *testing.T) {
	cases := map[string]func(o *models.Offer){
		"missing title":       func(o *models.Offer) { o.Title = "" },
		"short title":         func(o *models.Offer) { o.Title = "ab" },
		"missing description": func(o *models.Offer) { o.Description = "" },
		"missing start":       func(o *models.Offer) { o.StartDate = "" },
		"bad end":             func(o *models.Offer) { o.EndDate = "someday" },
		"end before start":    func(o *models.Offer) { o.StartDate, o.EndDate = "2023-09-01", "2023-08-01" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newOfferService(t)
			o := summerOffer()
			mutate(o)

			_, err := svc.Upsert(context.Background(), o)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status)

			offers, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, offers)
		})
	}
}

func TestOfferService_ReplaceAllDeletesByOmission(t *testing.T) {
	svc, _ := newOfferService(t)
	ctx := context.Background()

	a, b := summerOffer(), summerOffer()
	b.ID = "2"
	require.NoError(t, svc.ReplaceAll(ctx, []*models.Offer{a, b}))
	require.NoError(t, svc.ReplaceAll(ctx, []*models.Offer{b}))

	offers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "2", offers[0].ID)
}

func TestOfferService_ReplaceAllRejectsInvalidWithoutWriting(t *testing.T) {
	svc, _ := newOfferService(t)
	ctx := context.Background()
	require.NoError(t, svc.ReplaceAll(ctx, []*models.Offer{summerOffer()}))

	bad := summerOffer()
	bad.ID = "2"
	bad.Title = ""
	err := svc.ReplaceAll(ctx, []*models.Offer{bad})
	require.Error(t, err)

	offers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "1", offers[0].ID)
}

func TestOfferService_ReplaceAllRejectsDuplicateIDs(t *testing.T) {
	svc, _ := newOfferService(t)

	err := svc.ReplaceAll(context.Background(), []*models.Offer{summerOffer(), summerOffer()})
	assert.True(t, apperr.Is(err, "BAD_REQUEST"))
}

func TestOfferService_ActiveAndCarousel(t *testing.T) {
	svc, _ := newOfferService(t)
	ctx := context.Background()

	active := summerOffer()
	paused := summerOffer()
	paused.ID, paused.IsActive = "2", false
	expired := summerOffer()
	expired.ID, expired.StartDate, expired.EndDate = "3", "2023-01-01", "2023-01-31"
	require.NoError(t, svc.ReplaceAll(ctx, []*models.Offer{active, paused, expired}))

	list, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)

	feed, err := svc.Carousel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), feed.IntervalMs)
	assert.Len(t, feed.Offers, 1)
}

func TestOfferService_GetNotFound(t *testing.T) {
	svc, _ := newOfferService(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}
