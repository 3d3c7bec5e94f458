package allowlist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kingstalent/poster-gateway/internal/errors"
)

// RestRepo queries the allowed_users table through the Supabase PostgREST
// endpoint. Read-only; the gateway never writes allow-list entries.
type RestRepo struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRestRepo creates a PostgREST-backed allow-list repository.
func NewRestRepo(baseURL, apiKey string, timeout time.Duration) *RestRepo {
	return &RestRepo{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type allowedUserRow struct {
	Email string `json:"email"`
}

// Lookup reports whether email exists in allowed_users.
func (r *RestRepo) Lookup(ctx context.Context, email string) (bool, error) {
	if r.baseURL == "" {
		return false, errors.Wrapf(errors.ErrAllowlistUnavailable, "allowlist Lookup no base URL")
	}

	endpoint := fmt.Sprintf("%s/rest/v1/allowed_users?select=email&email=eq.%s&limit=1",
		r.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, errors.Wrapf(err, "allowlist Lookup request")
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return false, errors.Wrapf(errors.ErrAllowlistUnavailable, "allowlist Lookup: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, errors.Wrapf(errors.ErrAllowlistUnavailable, "allowlist Lookup status %d", resp.StatusCode)
	}

	var rows []allowedUserRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return false, errors.Wrapf(errors.ErrAllowlistUnavailable, "allowlist Lookup decode: %v", err)
	}

	return len(rows) > 0, nil
}
