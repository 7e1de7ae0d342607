package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// NewProductID builds "<unix millis>-<name lowercased, whitespace removed>".
func NewProductID(name string, now time.Time) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
	return fmt.Sprintf("%d-%s", now.UnixMilli(), compact)
}
