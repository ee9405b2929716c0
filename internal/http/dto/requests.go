package dto

type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	BusinessName *string `json:"business_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Connections

type ConnectMetaRequest struct {
	Code string `json:"code"` // OAuth authorization code
}

type SelectAccountRequest struct {
	AdAccountID *string `json:"ad_account_id,omitempty"`
	PixelID     *string `json:"pixel_id,omitempty"`
	CatalogID   *string `json:"catalog_id,omitempty"`
	CatalogName *string `json:"catalog_name,omitempty"`
	PageID      *string `json:"page_id,omitempty"`
	PageName    *string `json:"page_name,omitempty"`
}

// Briefs

type CreateBriefRequest struct {
	Website         *string `json:"website,omitempty"`
	TargetLocations *string `json:"target_locations,omitempty"`
	AgeRange        *string `json:"age_range,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	MonthlyBudget   *string `json:"monthly_budget,omitempty"`
	Tone            *string `json:"tone,omitempty"`
	Restrictions    *string `json:"restrictions,omitempty"`
	ProductSummary  *string `json:"product_summary,omitempty"`
}

// Campaigns

type CreateCampaignRequest struct {
	Name        string  `json:"name"`
	Objective   string  `json:"objective"`
	Goal        string  `json:"goal"`
	DailyBudget string  `json:"daily_budget"`
	Currency    string  `json:"currency"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Description *string `json:"description,omitempty"`
	OfferText   *string `json:"offer_text,omitempty"`
	AssetType   string  `json:"asset_type"` // upload / catalog
	PageID      *string `json:"page_id,omitempty"`
	CatalogID   *string `json:"catalog_id,omitempty"`
}

type UpdateCampaignRequest = CreateCampaignRequest

type SetCampaignStatusRequest struct {
	Status string `json:"status"`
}

// Webhooks

type CreateWebhookRequest struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
}
