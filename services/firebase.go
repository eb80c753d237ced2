package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

// FirebaseClient implements IdentityProvider over the Firebase Auth REST API.
// The base URL is injectable so tests can point it at a local server.
type FirebaseClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

const defaultFirebaseBaseURL = "https://identitytoolkit.googleapis.com/v1"

func NewFirebaseClient(apiKey string) *FirebaseClient {
	return &FirebaseClient{
		baseURL: defaultFirebaseBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// NewFirebaseClientWithBaseURL is used by tests to stub the provider.
func NewFirebaseClientWithBaseURL(apiKey, baseURL string) *FirebaseClient {
	c := NewFirebaseClient(apiKey)
	c.baseURL = baseURL
	return c
}

// FirebaseError is the provider's own error, surfaced verbatim so callers
// can branch on codes like EMAIL_EXISTS.
type FirebaseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *FirebaseError) Error() string {
	return fmt.Sprintf("firebase: %s (code %d)", e.Message, e.Code)
}

func (c *FirebaseClient) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var wrapper struct {
			Error FirebaseError `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
			return &FirebaseError{Code: resp.StatusCode, Message: resp.Status}
		}
		return &wrapper.Error
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *FirebaseClient) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var result struct {
		Users []struct {
			LocalID string `json:"localId"`
		} `json:"users"`
	}
	payload := map[string]any{"email": []string{email}}
	if err := c.post(ctx, "accounts:lookup", payload, &result); err != nil {
		return false, err
	}
	return len(result.Users) > 0, nil
}

func (c *FirebaseClient) CreateWithPassword(ctx context.Context, user models.User, password string) (*models.FederatedIdentity, error) {
	var result struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	payload := map[string]any{
		"email":             user.Email,
		"password":          password,
		"displayName":       user.GetDisplayName(),
		"returnSecureToken": false,
	}
	if err := c.post(ctx, "accounts:signUp", payload, &result); err != nil {
		return nil, err
	}
	return &models.FederatedIdentity{
		UID:         result.LocalID,
		Email:       result.Email,
		DisplayName: user.GetDisplayName(),
	}, nil
}

func (c *FirebaseClient) UpdateDisplayName(ctx context.Context, uid, name string) error {
	payload := map[string]any{"localId": uid, "displayName": name}
	return c.post(ctx, "accounts:update", payload, nil)
}

func (c *FirebaseClient) SendPasswordReset(ctx context.Context, email string) error {
	payload := map[string]any{"requestType": "PASSWORD_RESET", "email": email}
	return c.post(ctx, "accounts:sendOobCode", payload, nil)
}

func (c *FirebaseClient) Delete(ctx context.Context, uid string) error {
	payload := map[string]any{"localId": uid}
	return c.post(ctx, "accounts:delete", payload, nil)
}

func (c *FirebaseClient) ListAccounts(ctx context.Context) ([]models.FederatedIdentity, error) {
	var result struct {
		Users []struct {
			LocalID     string `json:"localId"`
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
		} `json:"users"`
	}
	if err := c.post(ctx, "accounts:batchGet", map[string]any{"maxResults": 1000}, &result); err != nil {
		return nil, err
	}
	accounts := make([]models.FederatedIdentity, 0, len(result.Users))
	for _, u := range result.Users {
		accounts = append(accounts, models.FederatedIdentity{
			UID:         u.LocalID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
		})
	}
	return accounts, nil
}
