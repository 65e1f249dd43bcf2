package public

import (
	"time"

	publicdomain "github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

type coordinatesPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type daySchedulePayload struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

type openStatusPayload struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

type businessSummaryResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	Department string              `json:"department,omitempty"`
	City       string              `json:"city,omitempty"`
	Rating     float64             `json:"rating"`
	Reviews    int                 `json:"reviews"`
	ImageURL   string              `json:"imageUrl,omitempty"`
	Verified   bool                `json:"verified"`
	Tags       []string            `json:"tags,omitempty"`
	OpenStatus openStatusPayload   `json:"openStatus"`
	Location   *coordinatesPayload `json:"location,omitempty"`
}

type businessDetailResponse struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	Category    string                        `json:"category"`
	Description string                        `json:"description,omitempty"`
	Address     string                        `json:"address,omitempty"`
	Department  string                        `json:"department,omitempty"`
	City        string                        `json:"city,omitempty"`
	Phone       string                        `json:"phone,omitempty"`
	WhatsApp    string                        `json:"whatsapp,omitempty"`
	Email       string                        `json:"email,omitempty"`
	Website     string                        `json:"website,omitempty"`
	Rating      float64                       `json:"rating"`
	Reviews     int                           `json:"reviews"`
	ImageURL    string                        `json:"imageUrl,omitempty"`
	Gallery     []string                      `json:"gallery,omitempty"`
	Verified    bool                          `json:"verified"`
	Tags        []string                      `json:"tags,omitempty"`
	Hours       map[string]daySchedulePayload `json:"workingHours,omitempty"`
	OpenStatus  openStatusPayload             `json:"openStatus"`
	Location    *coordinatesPayload           `json:"location,omitempty"`
	UpdatedAt   *time.Time                    `json:"updatedAt,omitempty"`
}

type businessListResponse struct {
	Items     []businessSummaryResponse `json:"items"`
	Total     int                       `json:"total"`
	AISourced bool                      `json:"aiSourced"`
}

type historyEntryResponse struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

type registrationResponse struct {
	Business       businessDetailResponse `json:"business"`
	RejectedImages []imageRejectionPayload `json:"rejectedImages,omitempty"`
	SkippedUploads []string                `json:"skippedUploads,omitempty"`
	CoordinateHint string                  `json:"coordinateHint,omitempty"`
	Degraded       bool                    `json:"degraded,omitempty"`
}

type imageRejectionPayload struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

func mapCoordinates(coords *publicdomain.Coordinates) *coordinatesPayload {
	if coords == nil {
		return nil
	}
	return &coordinatesPayload{Lat: coords.Lat, Lng: coords.Lng}
}

func (h *Handler) openStatus(hours publicdomain.WeeklyHours) openStatusPayload {
	status := publicdomain.OpenNow(hours, time.Now().In(h.location))
	return openStatusPayload{Open: status.Open, Message: status.Message}
}

func (h *Handler) buildBusinessSummary(business publicdomain.Business) businessSummaryResponse {
	return businessSummaryResponse{
		ID:         business.ID,
		Name:       business.Name,
		Category:   business.Category,
		Department: business.Department,
		City:       business.City,
		Rating:     business.Rating,
		Reviews:    business.Reviews,
		ImageURL:   business.CoverURL(),
		Verified:   business.Verified,
		Tags:       append([]string{}, business.Tags...),
		OpenStatus: h.openStatus(business.Hours),
		Location:   mapCoordinates(business.Coordinates),
	}
}

func (h *Handler) buildBusinessDetail(business publicdomain.Business) businessDetailResponse {
	var hours map[string]daySchedulePayload
	if len(business.Hours) > 0 {
		hours = make(map[string]daySchedulePayload, len(business.Hours))
		for day, schedule := range business.Hours {
			hours[day] = daySchedulePayload{
				Open:   schedule.Open,
				Close:  schedule.Close,
				Closed: schedule.Closed,
			}
		}
	}

	var updatedAt *time.Time
	if !business.UpdatedAt.IsZero() {
		t := business.UpdatedAt
		updatedAt = &t
	}

	return businessDetailResponse{
		ID:          business.ID,
		Name:        business.Name,
		Category:    business.Category,
		Description: business.Description,
		Address:     business.Address,
		Department:  business.Department,
		City:        business.City,
		Phone:       business.Phone,
		WhatsApp:    business.WhatsApp,
		Email:       business.Email,
		Website:     business.Website,
		Rating:      business.Rating,
		Reviews:     business.Reviews,
		ImageURL:    business.CoverURL(),
		Gallery:     append([]string{}, business.Gallery...),
		Verified:    business.Verified,
		Tags:        append([]string{}, business.Tags...),
		Hours:       hours,
		OpenStatus:  h.openStatus(business.Hours),
		Location:    mapCoordinates(business.Coordinates),
		UpdatedAt:   updatedAt,
	}
}
