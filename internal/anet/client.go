package anet

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anetops/anet-inventory/internal/branding"
)

// ErrMissingCredentials is returned when an API call is attempted without a
// resolved public/private key pair. Credentials may come from the settings
// file, the environment, or command-line flags; their absence only becomes
// an error at call time.
var ErrMissingCredentials = errors.New("atlantic.net credentials not set")

// Client talks to the Atlantic.Net cloud API.
type Client struct {
	publicKey  string
	privateKey string
	version    string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithVersion pins a specific API version date.
func WithVersion(v string) Option {
	return func(c *Client) {
		c.version = v
	}
}

// New creates a Client for the given key pair.
func New(publicKey, privateKey string, opts ...Option) *Client {
	c := &Client{
		publicKey:  publicKey,
		privateKey: privateKey,
		version:    branding.APIVersion(),
		baseURL:    branding.APIBase(),
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCloudServers returns all active cloud servers.
func (c *Client) ListCloudServers(ctx context.Context) ([]CloudServer, error) {
	raw, err := c.do(ctx, "list-instances", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		InstancesSet []CloudServer `json:"instancesSet"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding list-instances response: %w", err)
	}
	return body.InstancesSet, nil
}

// GetCloudServer returns a single cloud server by instance ID.
func (c *Client) GetCloudServer(ctx context.Context, instanceID string) (*CloudServer, error) {
	params := url.Values{"instanceid": {instanceID}}
	raw, err := c.do(ctx, "describe-instance", params)
	if err != nil {
		return nil, err
	}
	var body struct {
		InstancesSet []CloudServer `json:"instancesSet"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding describe-instance response: %w", err)
	}
	if len(body.InstancesSet) == 0 {
		return nil, fmt.Errorf("instance %s not found", instanceID)
	}
	return &body.InstancesSet[0], nil
}

// ListImages returns the available OS images.
func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	raw, err := c.do(ctx, "describe-image", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		ImagesSet []Image `json:"imagesSet"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding describe-image response: %w", err)
	}
	return body.ImagesSet, nil
}

// ListPlans returns the available server plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	raw, err := c.do(ctx, "describe-plan", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		PlansSet []Plan `json:"plansSet"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding describe-plan response: %w", err)
	}
	return body.PlansSet, nil
}

// ListSSHKeys returns the stored SSH public keys.
func (c *Client) ListSSHKeys(ctx context.Context) ([]SSHKey, error) {
	raw, err := c.do(ctx, "list-sshkeys", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		KeysSet []SSHKey `json:"sshKeysSet"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding list-sshkeys response: %w", err)
	}
	return body.KeysSet, nil
}

// do performs one signed API call and returns the raw "<action>response"
// payload from the envelope.
func (c *Client) do(ctx context.Context, action string, params url.Values) (json.RawMessage, error) {
	if c.publicKey == "" || c.privateKey == "" {
		return nil, ErrMissingCredentials
	}

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("Action", action)
	q.Set("Format", "json")
	q.Set("Version", c.version)
	q.Set("ACSAccessKeyId", c.publicKey)

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	guid, err := requestGUID()
	if err != nil {
		return nil, fmt.Errorf("generating request guid: %w", err)
	}
	q.Set("Timestamp", timestamp)
	q.Set("Rndguid", guid)
	q.Set("Signature", sign(timestamp, guid, c.privateKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", action, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", action, err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding %s envelope: %w", action, err)
	}

	if raw, ok := envelope["error"]; ok {
		var apiErr struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		}
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%s failed: %s (code %d)", action, apiErr.Message, apiErr.Code)
		}
		return nil, fmt.Errorf("%s failed: %s", action, string(raw))
	}

	payload, ok := envelope[action+"response"]
	if !ok {
		return nil, fmt.Errorf("%s envelope missing %sresponse", action, action)
	}
	return payload, nil
}

// sign computes the request signature: base64 of HMAC-SHA256 over the
// concatenated timestamp and request GUID, keyed with the private key.
func sign(timestamp, guid, privateKey string) string {
	mac := hmac.New(sha256.New, []byte(privateKey))
	mac.Write([]byte(timestamp + guid))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func requestGUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
