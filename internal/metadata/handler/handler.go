package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

type Service interface {
	Name(ctx context.Context, node common.Hash) (string, error)
	PrimaryName(ctx context.Context, addr common.Address) (string, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/names/{node}", h.HandleName)
	r.Get("/reverse/{address}", h.HandlePrimaryName)
}

type NameResponse struct {
	Node common.Hash `json:"node"`
	Name string      `json:"name"`
}

type PrimaryNameResponse struct {
	Address common.Address `json:"address"`
	Name    string         `json:"name"`
}

func (h *Handler) HandleName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, err := domain.ParseNode(chi.URLParam(r, "node"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	name, err := h.service.Name(ctx, node)
	if err != nil {
		h.fail(ctx, w, "name lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NameResponse{Node: node, Name: name})
}

// HandlePrimaryName returns the forward-verified name of an address.
func (h *Handler) HandlePrimaryName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	name, err := h.service.PrimaryName(ctx, addr)
	if err != nil {
		h.fail(ctx, w, "primary name lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PrimaryNameResponse{Address: addr, Name: name})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelDebug
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	httputil.WriteError(w, err)
}
