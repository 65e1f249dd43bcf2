package domain

import (
	"sort"
	"strings"
	"time"
)

// Business represents a publicly visible directory listing.
type Business struct {
	ID          string
	OwnerID     string
	Name        string
	Category    string
	Description string
	Address     string
	Department  string
	City        string
	Phone       string
	WhatsApp    string
	Email       string
	Website     string
	Rating      float64
	Reviews     int
	ImageURL    string
	Gallery     []string
	Verified    bool
	Tags        []string
	Hours       WeeklyHours
	Coordinates *Coordinates
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Listing lifecycle statuses.
const (
	StatusActive = "active"
	StatusReview = "review"
)

// CoverURL returns the cover image: the first gallery entry, falling back to
// the legacy single image field.
func (b Business) CoverURL() string {
	if len(b.Gallery) > 0 {
		return b.Gallery[0]
	}
	return b.ImageURL
}

// RemoveGalleryURL drops url from the gallery and re-promotes the cover when
// the removed entry was the first one.
func (b *Business) RemoveGalleryURL(url string) {
	kept := make([]string, 0, len(b.Gallery))
	for _, g := range b.Gallery {
		if g != url {
			kept = append(kept, g)
		}
	}
	b.Gallery = kept
	if len(kept) > 0 {
		b.ImageURL = kept[0]
	} else if b.ImageURL == url {
		b.ImageURL = ""
	}
}

// Matches reports whether the listing matches a case-insensitive substring
// query on name, category or any tag.
func (b Business) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Category), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortByRating orders listings best-rated first, stable within equal ratings.
func SortByRating(businesses []Business) {
	sort.SliceStable(businesses, func(i, j int) bool {
		return businesses[i].Rating > businesses[j].Rating
	})
}
