package models

import (
	"time"

	"github.com/google/uuid"
)

// Connection links a user to their Meta ad account. One per user; the access
// token is cleared on disconnect, never deleted with the row.
type Connection struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	AdAccountID *string   `json:"ad_account_id,omitempty"`
	PixelID     *string   `json:"pixel_id,omitempty"`
	CatalogID   *string   `json:"catalog_id,omitempty"`
	CatalogName *string   `json:"catalog_name,omitempty"`
	PageID      *string   `json:"page_id,omitempty"`
	PageName    *string   `json:"page_name,omitempty"`
	AccessToken *string   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Connected reports whether the connection can be used to submit campaigns:
// both the ad account and the access token must be present.
func (c *Connection) Connected() bool {
	return c != nil && c.AdAccountID != nil && *c.AdAccountID != "" &&
		c.AccessToken != nil && *c.AccessToken != ""
}
