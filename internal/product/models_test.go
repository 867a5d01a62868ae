// internal/product/models_test.go
package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSKUFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain pdp url",
			url:  "https://www.zeptonow.com/pn/origami-tissues/pvid/abc-123",
			want: "abc-123",
		},
		{
			name: "query string stripped",
			url:  "https://www.zeptonow.com/pn/origami-tissues/pvid/abc-123?utm_source=share",
			want: "abc-123",
		},
		{
			name: "trailing segment only",
			url:  "https://example.com/a/b/c/deadbeef",
			want: "deadbeef",
		},
		{
			name: "no path separator",
			url:  "deadbeef",
			want: "deadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SKUFromURL(tt.url))
		})
	}
}

func TestSourceDate(t *testing.T) {
	assert.Equal(t, "05-03-2024", SourceDate(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
}

func TestNewNotFoundRecord(t *testing.T) {
	rec := NewNotFoundRecord("01-01-2024", "zepto", "origami", "Mumbai", "sku-1", "400001", "8")

	assert.Equal(t, NotFoundSentinel, rec.Title)
	assert.Equal(t, NotFoundSentinel, rec.IsAvailable)
	assert.Empty(t, rec.MRP)
	assert.Empty(t, rec.LivePrice)
	assert.Equal(t, "8", rec.ETA)
	assert.Equal(t, "Mumbai", rec.City)
	assert.Equal(t, "400001", rec.Pincode)
}
