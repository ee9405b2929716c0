package services

import (
	"fmt"

	"github.com/ad-agent/backend/internal/meta"
	"github.com/ad-agent/backend/internal/models"
)

// creativeKind selects which of the four creative shapes gets built. The
// four cases are dispatched on a tag instead of nested conditionals so each
// one stays independently testable.
type creativeKind int

const (
	creativeVideo creativeKind = iota
	creativeSingleImage
	creativeCarousel
	creativeCatalog
)

// carouselMaxChildren caps the child attachments of a carousel creative.
const carouselMaxChildren = 10

const placeholderLink = "https://example.com"

// classifyCreative tags the payload with the creative shape it needs.
func classifyCreative(payload *models.AgentPayload) (creativeKind, error) {
	if payload.Draft.AssetType == models.AssetTypeCatalog {
		if payload.CatalogID == nil || *payload.CatalogID == "" {
			return 0, fmt.Errorf("catalog campaign requires a product catalog, none is selected")
		}
		return creativeCatalog, nil
	}

	if len(payload.Assets) == 0 {
		return 0, fmt.Errorf("no creative assets uploaded for this campaign")
	}
	if payload.Assets[0].IsVideo() {
		return creativeVideo, nil
	}
	if len(payload.Assets) == 1 {
		return creativeSingleImage, nil
	}
	return creativeCarousel, nil
}

// creativeFields builds the ad-creative request for the tagged shape.
func (s *LaunchService) creativeFields(payload *models.AgentPayload, kind creativeKind) map[string]string {
	draft := &payload.Draft

	pageID := ""
	if payload.PageID != nil {
		pageID = *payload.PageID
	}

	link := placeholderLink
	if w := payload.Brief["website"]; w != "" {
		link = w
	}

	message := ""
	if draft.Description != nil {
		message = *draft.Description
	}

	cta := map[string]any{
		"type":  meta.CallToActionShopNow,
		"value": map[string]any{"link": link},
	}

	var story map[string]any

	switch kind {
	case creativeVideo:
		story = map[string]any{
			"page_id": pageID,
			"video_data": map[string]any{
				"video_url":      payload.Assets[0].PublicURL,
				"title":          draft.Name,
				"message":        message,
				"call_to_action": cta,
			},
		}

	case creativeSingleImage:
		story = map[string]any{
			"page_id": pageID,
			"link_data": map[string]any{
				"link":           link,
				"name":           draft.Name,
				"message":        message,
				"image_url":      payload.Assets[0].PublicURL,
				"call_to_action": cta,
			},
		}

	case creativeCarousel:
		assets := payload.Assets
		if len(assets) > carouselMaxChildren {
			assets = assets[:carouselMaxChildren]
		}
		children := make([]map[string]any, 0, len(assets))
		for i := range assets {
			children = append(children, map[string]any{
				"link":           link,
				"name":           assets[i].DisplayName(),
				"image_url":      assets[i].PublicURL,
				"call_to_action": cta,
			})
		}
		story = map[string]any{
			"page_id": pageID,
			"link_data": map[string]any{
				"link":              link,
				"message":           message,
				"call_to_action":    cta,
				"child_attachments": children,
			},
		}

	case creativeCatalog:
		fields := map[string]string{
			"name":           draft.Name + " - Creative",
			"product_set_id": *payload.CatalogID,
			"object_story_spec": jsonField(map[string]any{
				"page_id": pageID,
				"template_data": map[string]any{
					"message":        "Check out our products",
					"link":           link,
					"call_to_action": cta,
				},
			}),
		}
		return fields
	}

	return map[string]string{
		"name":              draft.Name + " - Creative",
		"object_story_spec": jsonField(story),
	}
}
