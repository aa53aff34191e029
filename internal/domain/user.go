package domain

import "time"

// User is a local record for an identity asserted by the campus SSO provider.
// SSOID is the provider's stable unique key; the row is upserted on every
// successful login and never deleted.
type User struct {
	ID          int32     `json:"id"`
	SSOID       string    `json:"sso_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
