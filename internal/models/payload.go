package models

// Operating modes for a freshly assembled payload. First creation is always
// conservative.
const (
	AgentModeTest  = "test"
	AgentModeScale = "scale"
)

// AgentPayload is the fully-resolved, immutable input for one remote
// campaign-creation attempt. It is assembled once and never persisted.
type AgentPayload struct {
	Draft       Campaign          `json:"draft"`
	AdAccountID string            `json:"ad_account_id"`
	AccessToken string            `json:"access_token"`
	PixelID     *string           `json:"pixel_id,omitempty"`
	CatalogID   *string           `json:"catalog_id,omitempty"`
	CatalogName *string           `json:"catalog_name,omitempty"`
	PageID      *string           `json:"page_id,omitempty"`
	PageName    *string           `json:"page_name,omitempty"`
	Brief       map[string]string `json:"brief"`
	Assets      []Asset           `json:"assets"`
	Mode        string            `json:"mode"`
}
