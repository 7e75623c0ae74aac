package handler

import (
	"context"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

type Service interface {
	BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, caller, spender common.Address, amount *big.Int) error
	Transfer(ctx context.Context, caller, to common.Address, amount *big.Int) error
	Mint(ctx context.Context, to common.Address, amount *big.Int) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/token/balances/{address}", h.HandleBalance)
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/token/approvals", h.HandleApprove)
	r.Post("/token/transfers", h.HandleTransfer)
}

// RegisterAdmin mounts routes that must sit behind the admin token.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/token/mint", h.HandleMint)
}

// HandleBalance returns the balance and, with ?spender=, the allowance granted to it.
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	balance, err := h.service.BalanceOf(ctx, addr)
	if err != nil {
		h.fail(w, r, "failed to load balance", err)
		return
	}
	resp := BalanceResponse{Address: addr, Balance: balance.String()}

	if raw := r.URL.Query().Get("spender"); raw != "" {
		spender, err := domain.ParseAddress(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		allowance, err := h.service.Allowance(ctx, addr, spender)
		if err != nil {
			h.fail(w, r, "failed to load allowance", err)
			return
		}
		resp.Spender = &spender
		resp.Allowance = allowance.String()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ApproveRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Approve(ctx, requestcontext.Caller(ctx), req.spender, req.amount); err != nil {
		h.fail(w, r, "approve failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Transfer(ctx, requestcontext.Caller(ctx), req.to, req.amount); err != nil {
		h.fail(w, r, "transfer failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Mint(ctx, req.to, req.amount); err != nil {
		h.fail(w, r, "mint failed", err)
		return
	}
	balance, err := h.service.BalanceOf(ctx, req.to)
	if err != nil {
		h.fail(w, r, "failed to load balance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Address: req.to, Balance: balance.String()})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	httputil.WriteError(w, err)
}
