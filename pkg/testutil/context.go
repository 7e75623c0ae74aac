package testutil

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"bicns/pkg/requestcontext"
)

// WithCaller marks the request as authenticated by addr, the way the
// RequireCaller middleware does.
func WithCaller(req *http.Request, addr common.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), addr))
}
