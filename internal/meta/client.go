package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the Meta Graph API. Only the operations needed for the
// launch sequence and account linking are implemented.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL, version string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

type graphResponse struct {
	ID    string      `json:"id"`
	Error *graphError `json:"error"`
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.version, strings.TrimLeft(path, "/"))
}

// postForm submits a form-encoded POST and returns the created object id.
// The Graph API answers either {"id": "..."} or {"error": {...}}.
func (c *Client) postForm(ctx context.Context, token, path string, fields url.Values) (string, error) {
	fields.Set("access_token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(fields.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("graph api unavailable: %w", err)
	}
	defer resp.Body.Close()

	var parsed graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("graph api returned %d: unreadable body", resp.StatusCode)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("graph api error (%s, code %d): %s", parsed.Error.Type, parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("graph api returned %d", resp.StatusCode)
	}
	return parsed.ID, nil
}

func toValues(fields map[string]string) url.Values {
	v := url.Values{}
	for k, val := range fields {
		v.Set(k, val)
	}
	return v
}

// CreateCampaign creates a campaign under the ad account and returns its id.
func (c *Client) CreateCampaign(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return c.postForm(ctx, token, accountID+"/campaigns", toValues(fields))
}

func (c *Client) CreateAdSet(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return c.postForm(ctx, token, accountID+"/adsets", toValues(fields))
}

func (c *Client) CreateAdCreative(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return c.postForm(ctx, token, accountID+"/adcreatives", toValues(fields))
}

func (c *Client) CreateAd(ctx context.Context, token, accountID string, fields map[string]string) (string, error) {
	return c.postForm(ctx, token, accountID+"/ads", toValues(fields))
}

// DeleteResource marks a previously created object deleted. The Graph API
// reuses the object node POST with a DELETED status for this.
func (c *Client) DeleteResource(ctx context.Context, token, resourceID string) error {
	_, err := c.postForm(ctx, token, resourceID, toValues(map[string]string{"status": StatusDeleted}))
	return err
}

// getJSON performs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint(path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph api unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph api returned %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ExchangeCode trades an OAuth authorization code for a user access token.
func (c *Client) ExchangeCode(ctx context.Context, appID, appSecret, redirectURI, code string) (string, error) {
	q := url.Values{}
	q.Set("client_id", appID)
	q.Set("client_secret", appSecret)
	q.Set("redirect_uri", redirectURI)
	q.Set("code", code)

	var result struct {
		AccessToken string      `json:"access_token"`
		Error       *graphError `json:"error"`
	}
	if err := c.getJSON(ctx, "oauth/access_token", q, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("oauth exchange failed: %s", result.Error.Message)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("oauth exchange returned empty token")
	}
	return result.AccessToken, nil
}

type AdAccount struct {
	ID        string `json:"id"` // "act_<n>"
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

func (c *Client) GetAdAccounts(ctx context.Context, token string) ([]AdAccount, error) {
	q := url.Values{}
	q.Set("access_token", token)
	q.Set("fields", "id,account_id,name")

	var result struct {
		Data []AdAccount `json:"data"`
	}
	if err := c.getJSON(ctx, "me/adaccounts", q, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductCatalog struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) GetPages(ctx context.Context, token string) ([]Page, error) {
	q := url.Values{}
	q.Set("access_token", token)
	q.Set("fields", "id,name")

	var result struct {
		Data []Page `json:"data"`
	}
	if err := c.getJSON(ctx, "me/accounts", q, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// GetProductCatalogs returns the product catalogs the token can advertise
// from, for the catalog picker.
func (c *Client) GetProductCatalogs(ctx context.Context, token string) ([]ProductCatalog, error) {
	q := url.Values{}
	q.Set("access_token", token)
	q.Set("fields", "id,name")

	var result struct {
		Data []ProductCatalog `json:"data"`
	}
	if err := c.getJSON(ctx, "me/assigned_product_catalogs", q, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
