package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"bicns/pkg/requestcontext"
)

type stubValidator map[string]*JWTClaims

func (v stubValidator) ValidateToken(token string) (*JWTClaims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

func TestRequireCaller(t *testing.T) {
	caller := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	validator := stubValidator{"good": {Caller: caller, JTI: "j1"}}

	var seen common.Address
	h := RequireCaller(validator, slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.Caller(r.Context())
		}))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = common.Address{}
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, caller, seen)
			} else {
				assert.Equal(t, common.Address{}, seen)
				assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
			}
		})
	}
}
