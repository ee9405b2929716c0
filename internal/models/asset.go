package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Asset struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CampaignID  *uuid.UUID `json:"campaign_id,omitempty"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	StorageKey  string     `json:"storage_key"`
	PublicURL   string     `json:"public_url"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsVideo reports whether the asset should be rendered as a video creative.
func (a *Asset) IsVideo() bool {
	return strings.HasPrefix(a.ContentType, "video/")
}

// DisplayName is the file name with its extension stripped, used as the
// card name for carousel children.
func (a *Asset) DisplayName() string {
	name := a.FileName
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}
