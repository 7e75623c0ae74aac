//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	jwttoken "bicns/internal/jwt_token"
)

// TestContext holds per-scenario state: the accounts in play, values
// remembered between steps and the last response.
type TestContext struct {
	baseURL    string
	client     *http.Client
	jwt        *jwttoken.JWTService
	adminToken string

	accounts map[string]common.Address
	values   map[string]string

	lastStatus int
	lastBody   []byte
}

func NewTestContext(baseURL string, jwt *jwttoken.JWTService, adminToken string) *TestContext {
	return &TestContext{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		jwt:        jwt,
		adminToken: adminToken,
		accounts:   make(map[string]common.Address),
		values:     make(map[string]string),
	}
}

func (tc *TestContext) reset() {
	tc.accounts = make(map[string]common.Address)
	tc.values = make(map[string]string)
	tc.lastStatus = 0
	tc.lastBody = nil
}

// Account returns the address behind a scenario alias. Each scenario gets
// fresh random addresses so runs against a long-lived server do not collide.
func (tc *TestContext) Account(name string) common.Address {
	if addr, ok := tc.accounts[name]; ok {
		return addr
	}
	var b [common.AddressLength]byte
	_, _ = rand.Read(b[:])
	addr := common.BytesToAddress(b[:])
	tc.accounts[name] = addr
	return addr
}

func (tc *TestContext) Remember(key, value string) { tc.values[key] = value }

func (tc *TestContext) Recall(key string) (string, error) {
	v, ok := tc.values[key]
	if !ok {
		return "", fmt.Errorf("nothing remembered under %q", key)
	}
	return v, nil
}

func (tc *TestContext) GET(ctx context.Context, path string) error {
	return tc.do(ctx, http.MethodGet, path, nil, nil)
}

// POST sends an anonymous request.
func (tc *TestContext) POST(ctx context.Context, path string, body any) error {
	return tc.do(ctx, http.MethodPost, path, body, nil)
}

// POSTAs signs the request with a bearer token for the named account.
func (tc *TestContext) POSTAs(ctx context.Context, account, path string, body any) error {
	token, err := tc.jwt.GenerateCallerToken(tc.Account(account), 5*time.Minute)
	if err != nil {
		return fmt.Errorf("sign token for %s: %w", account, err)
	}
	return tc.do(ctx, http.MethodPost, path, body, map[string]string{"Authorization": "Bearer " + token})
}

func (tc *TestContext) AdminPOST(ctx context.Context, path string, body any) error {
	return tc.do(ctx, http.MethodPost, path, body, map[string]string{"X-Admin-Token": tc.adminToken})
}

func (tc *TestContext) do(ctx context.Context, method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) Status() int { return tc.lastStatus }

func (tc *TestContext) Body() string { return string(tc.lastBody) }

// Field returns a top-level field of the last JSON response.
func (tc *TestContext) Field(name string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w (body: %s)", err, tc.lastBody)
	}
	v, ok := body[name]
	if !ok {
		return nil, fmt.Errorf("response has no field %q (body: %s)", name, tc.lastBody)
	}
	return v, nil
}

// StringField formats the field the way it appears in JSON. Numbers are
// rendered without exponent so unix timestamps round-trip.
func (tc *TestContext) StringField(name string) (string, error) {
	v, err := tc.Field(name)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return fmt.Sprintf("%.0f", t), nil
	default:
		return fmt.Sprint(t), nil
	}
}
