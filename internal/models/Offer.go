package models

import (
	"fmt"
	"time"
)

type DisplayOptions struct {
	Autoplay   bool   `json:"autoplay"`
	Controls   bool   `json:"controls"`
	Loop       bool   `json:"loop"`
	Muted      bool   `json:"muted"`
	ShowBadge  bool   `json:"showBadge"`
	BadgeText  string `json:"badgeText"`
	BadgeColor string `json:"badgeColor"`
}

// Offer is a video offer shown in the storefront carousel. Dates keep the
// exact string the admin submitted.
type Offer struct {
	ID             string         `json:"id"`
	Title          string         `json:"title" validate:"required|minLen:3|maxLen:100"`
	Description    string         `json:"description" validate:"required|maxLen:1000"`
	VideoURL       string         `json:"videoUrl"`
	ThumbnailURL   string         `json:"thumbnailUrl"`
	IsActive       bool           `json:"isActive"`
	StartDate      string         `json:"startDate" validate:"required"`
	EndDate        string         `json:"endDate" validate:"required"`
	DisplayOptions DisplayOptions `json:"displayOptions"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC3339 timestamps and bare dates. Values without a zone
// are read as UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// Window returns the parsed start and end of the offer.
func (o *Offer) Window() (time.Time, time.Time, error) {
	start, err := ParseDate(o.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(o.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// IsOfferActive reports isActive && startDate <= now <= endDate.
// An offer with unparseable dates is never active.
func IsOfferActive(o *Offer, now time.Time) bool {
	if !o.IsActive {
		return false
	}
	start, end, err := o.Window()
	if err != nil {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// CarouselFeed is what the storefront carousel cycles through.
type CarouselFeed struct {
	IntervalMs int64    `json:"intervalMs"`
	Offers     []*Offer `json:"offers"`
}
