package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модели

// ListVenuesRequest запрос на получение списка площадок
type ListVenuesRequest struct {
	Building    *string `json:"building,omitempty"`
	CustodianID *int64  `json:"custodianId,omitempty"`
}

// UpdateVenueRequest запрос на обновление площадки
// Все поля опциональны - обновляются только переданные значения
type UpdateVenueRequest struct {
	UserID      int64   `json:"userId"`
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Building    *string `json:"building,omitempty"`
	Location    *string `json:"location,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// ApplyToVenue применяет обновления к площадке
// Обновляются только непустые (not nil) поля из request
func (r *UpdateVenueRequest) ApplyToVenue(v *domain.Venue) {
	if r.Name != nil {
		v.Name = strings.TrimSpace(*r.Name)
	}
	if r.Code != nil {
		v.Code = strings.TrimSpace(*r.Code)
	}
	if r.Building != nil {
		v.Building = *r.Building
	}
	if r.Location != nil {
		v.Location = *r.Location
	}
	if r.Capacity != nil {
		v.Capacity = *r.Capacity
	}
	if r.Description != nil {
		v.Description = *r.Description
	}
	if r.ImageURL != nil {
		v.ImageURL = *r.ImageURL
	}
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Building    string    `json:"building,omitempty"`
	Location    string    `json:"location,omitempty"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CustodianID *int64    `json:"custodianId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	return &VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Code:        v.Code,
		Building:    v.Building,
		Location:    v.Location,
		Capacity:    v.Capacity,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		CustodianID: v.CustodianID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// FromDomainVenueList конвертирует список domain моделей в DTO
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	resp := &VenueListResponse{
		Venues: make([]VenueResponse, 0, len(venues)),
	}
	for _, v := range venues {
		if venueResp := FromDomainVenue(v); venueResp != nil {
			resp.Venues = append(resp.Venues, *venueResp)
		}
	}
	return resp
}
