package domain

import "time"

type CarpoolType string

const (
	CarpoolTypeAirport   CarpoolType = "airport"
	CarpoolTypeEvent     CarpoolType = "event"
	CarpoolTypeCommute   CarpoolType = "commute"
	CarpoolTypeRecurring CarpoolType = "recurring"
	CarpoolTypeOther     CarpoolType = "other"
)

// ValidCarpoolType reports whether t is one of the known carpool types.
func ValidCarpoolType(t CarpoolType) bool {
	switch t {
	case CarpoolTypeAirport, CarpoolTypeEvent, CarpoolTypeCommute, CarpoolTypeRecurring, CarpoolTypeOther:
		return true
	}
	return false
}

// Carpool is a posted ride with a fixed seat capacity.
//
// Capacity counts every seat including the owner's. CurrentPassengers counts
// only approved non-owner passengers and is a cached derived value: it must
// equal the number of approved join requests for this carpool after every
// committed transaction. Only the approval/removal transactions mutate it.
type Carpool struct {
	ID                int32       `json:"id"`
	CreatedBy         int32       `json:"created_by"`
	Type              CarpoolType `json:"carpool_type"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	EventName         string      `json:"event_name,omitempty"`
	PickupDetails     string      `json:"pickup_details,omitempty"`
	DropoffDetails    string      `json:"dropoff_details,omitempty"`
	DepartureDate     time.Time   `json:"departure_date"`
	DepartureTime     string      `json:"departure_time"` // "HH:MM" wall-clock time
	Capacity          int32       `json:"capacity"`
	CurrentPassengers int32       `json:"current_passengers"`
	TagIDs            []int32     `json:"tags"`
	Contact           string      `json:"contact"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// IsFull reports whether every seat is taken. The authoritative check happens
// inside the approval transaction; this is only for best-effort pre-checks
// and listings.
func (c *Carpool) IsFull() bool {
	return c.CurrentPassengers >= c.Capacity
}

// CarpoolView is a carpool joined with its creator's display info and
// resolved tag objects, as served by listings and detail reads.
type CarpoolView struct {
	Carpool
	CreatorName  string `json:"creator_name"`
	CreatorSSOID string `json:"creator_sso_id"`
	CreatorEmail string `json:"creator_email,omitempty"`
	Tags         []Tag  `json:"tag_details"`
}

// TripView is one row of the "my trips" aggregate: a carpool the caller owns
// or holds a join request on, tagged with the caller's role. Role is "owner"
// for owned carpools, otherwise the caller's join request status.
type TripView struct {
	CarpoolView
	Role      string `json:"role"`
	Completed bool   `json:"completed"`
}

const TripRoleOwner = "owner"

// Sort keys accepted by carpool listings. Anything else falls back to the
// default departure_date ascending.
const (
	SortByDepartureDate = "departure_date"
	SortByCreatedAt     = "created_at"
	SortByCapacity      = "capacity"
)

// CarpoolFilter is the filter set for carpool listings. Zero values mean
// "no constraint".
type CarpoolFilter struct {
	Search        string
	Type          CarpoolType
	TagIDs        []int32
	DateFrom      string // "2006-01-02"
	DateTo        string
	AvailableOnly bool
	SortBy        string
	SortDesc      bool
}
