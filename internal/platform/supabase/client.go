package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Client talks to the identity provider's REST surface using the
// service-role credential. Every call is bounded by a 10s timeout; there is
// no automatic retry across timeouts.
type Client struct {
	baseURL    string
	serviceKey string
	httpc      *http.Client
	log        *zap.SugaredLogger
}

func New(baseURL, serviceKey string, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpc:      &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, &Error{Kind: KindUnexpected, Message: err.Error()}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, &Error{Kind: KindUnexpected, Message: err.Error()}
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Timeouts and connection failures are indistinguishable to the
		// caller: the provider is unavailable either way.
		return 0, nil, &Error{Kind: KindUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &Error{Kind: KindUnavailable, Message: err.Error()}
	}
	return resp.StatusCode, data, nil
}

// CreateUser registers a new account with an unconfirmed email.
func (c *Client) CreateUser(ctx context.Context, email, password string, meta Metadata) (*User, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": false,
		"user_metadata": meta,
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, classify(status, body)
	}
	u, err := decodeUser(body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Status: status, Message: err.Error()}
	}
	return u, nil
}

// SignInWithPassword exchanges credentials for the provider's user record.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*User, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		// The token endpoint authenticates the end user, not the gateway:
		// a 401/403 here means bad credentials, not misconfiguration.
		e := classify(status, body)
		if e.Kind == KindUnauthorized {
			e.Kind = KindRejected
		}
		return nil, e
	}
	u, err := decodeUser(body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Status: status, Message: err.Error()}
	}
	return u, nil
}

// SendOTP asks the provider to dispatch a one-time code email. otpType is
// "signup" or "recovery".
func (c *Client) SendOTP(ctx context.Context, email, otpType string) error {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/otp", map[string]any{
		"email":       email,
		"type":        otpType,
		"create_user": false,
	})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return classify(status, body)
	}
	return nil
}

// VerifyOTP checks a one-time code against the provider. A wrong or
// expired code is an expected outcome and yields (nil, nil); only provider
// outages surface as errors.
func (c *Client) VerifyOTP(ctx context.Context, email, code, otpType string) (*User, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/verify", map[string]any{
		"email": email,
		"token": code,
		"type":  otpType,
	})
	if err != nil {
		return nil, err
	}
	if status >= 500 {
		return nil, classify(status, body)
	}
	if status < 200 || status >= 300 {
		c.log.Debugw("otp verification refused by provider", "email", email, "status", status)
		return nil, nil
	}
	u, err := decodeUser(body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Status: status, Message: err.Error()}
	}
	return u, nil
}

// UserByEmail scans the admin user list for a matching email, returning
// (nil, nil) when no account exists. The list is paginated; a short page
// marks the end.
func (c *Client) UserByEmail(ctx context.Context, email string) (*User, error) {
	const perPage = 1000
	for page := 1; ; page++ {
		path := fmt.Sprintf("/auth/v1/admin/users?page=%d&per_page=%d", page, perPage)
		status, body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			return nil, classify(status, body)
		}
		users, err := decodeUserList(body)
		if err != nil {
			return nil, &Error{Kind: KindUnexpected, Status: status, Message: err.Error()}
		}
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				return u, nil
			}
		}
		if len(users) < perPage {
			return nil, nil
		}
	}
}

// UpdateUser applies an admin update (password, confirmation flag, or
// metadata merge) to an existing account.
func (c *Client) UpdateUser(ctx context.Context, userID string, update UserUpdate) error {
	status, body, err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+userID, update)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return classify(status, body)
	}
	return nil
}
