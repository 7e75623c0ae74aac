package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

type Service interface {
	SetNameForAddr(ctx context.Context, caller, addr, owner, resolver common.Address, name string) (common.Hash, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/reverse", h.HandleSetName)
}

// HandleSetName claims a reverse record. Addr and owner default to the caller.
func (h *Handler) HandleSetName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SetNameRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	caller := requestcontext.Caller(ctx)
	addr, owner := req.addr, req.owner
	if addr == (common.Address{}) {
		addr = caller
	}
	if owner == (common.Address{}) {
		owner = caller
	}
	node, err := h.service.SetNameForAddr(ctx, caller, addr, owner, req.resolver, req.Name)
	if err != nil {
		level := slog.LevelWarn
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, "set reverse name failed", "request_id", requestcontext.RequestID(ctx), "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ReverseResponse{Node: node, Addr: addr, Name: req.Name})
}
