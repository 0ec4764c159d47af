package domain

import "time"

// Venue represents a bookable physical space
type Venue struct {
	ID          int64
	Name        string
	Code        string
	Building    string
	Location    string
	Capacity    int
	Description string
	ImageURL    string
	CustodianID *int64 // NULL = managed by admins only
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsManagedBy returns true if the user is the custodian of the venue
func (v *Venue) IsManagedBy(userID int64) bool {
	return v.CustodianID != nil && *v.CustodianID == userID
}

// VenuesFilter filter for venue listing
type VenuesFilter struct {
	Building    *string
	CustodianID *int64
}
