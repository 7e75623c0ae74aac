package handler

import (
	"context"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"bicns/internal/controller/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

type Service interface {
	Valid(label string) bool
	Available(ctx context.Context, label string) (bool, error)
	RentPrice(label string, duration uint64) models.Price
	MinCommitmentAge() uint64
	MaxCommitmentAge() uint64
	MakeCommitment(p models.RegisterParams) (common.Hash, error)
	Commit(ctx context.Context, caller common.Address, hash common.Hash) error
	Commitments(ctx context.Context, hash common.Hash) (uint64, error)
	Register(ctx context.Context, caller common.Address, p models.RegisterParams, fee *big.Int) (models.Registration, error)
	Renew(ctx context.Context, caller common.Address, label string, duration uint64, fee *big.Int) (uint64, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/controller/labels/{label}", h.HandleLabel)
	r.Get("/controller/labels/{label}/price", h.HandlePrice)
	r.Post("/controller/commitments/make", h.HandleMakeCommitment)
	r.Get("/controller/commitments/{hash}", h.HandleGetCommitment)
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/controller/commitments", h.HandleCommit)
	r.Post("/controller/registrations", h.HandleRegister)
	r.Post("/controller/renewals", h.HandleRenew)
}

func (h *Handler) HandleLabel(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	available, err := h.service.Available(r.Context(), label)
	if err != nil {
		h.fail(w, r, "failed to check availability", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LabelResponse{
		Label:     label,
		Valid:     h.service.Valid(label),
		Available: available,
	})
}

// HandlePrice quotes ?duration= seconds, defaulting to the minimum lease.
func (h *Handler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	duration := models.MinRegistrationDuration
	if raw := r.URL.Query().Get("duration"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "duration must be a whole number of seconds"))
			return
		}
		duration = v
	}
	httputil.WriteJSON(w, http.StatusOK, toPriceResponse(label, duration, h.service.RentPrice(label, duration)))
}

func (h *Handler) HandleMakeCommitment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CommitmentParamsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	hash, err := h.service.MakeCommitment(req.params)
	if err != nil {
		h.fail(w, r, "make commitment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CommitmentResponse{Commitment: hash})
}

func (h *Handler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CommitRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Commit(ctx, requestcontext.Caller(ctx), req.hash); err != nil {
		h.fail(w, r, "commit failed", err)
		return
	}
	h.writeCommitment(w, r, req.hash, http.StatusCreated)
}

func (h *Handler) HandleGetCommitment(w http.ResponseWriter, r *http.Request) {
	hash, err := domain.ParseHash(chi.URLParam(r, "hash"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeCommitment(w, r, hash, http.StatusOK)
}

func (h *Handler) writeCommitment(w http.ResponseWriter, r *http.Request, hash common.Hash, status int) {
	ts, err := h.service.Commitments(r.Context(), hash)
	if err != nil {
		h.fail(w, r, "failed to load commitment", err)
		return
	}
	httputil.WriteJSON(w, status, CommitmentResponse{
		Commitment:   hash,
		Timestamp:    ts,
		RevealableAt: ts + h.service.MinCommitmentAge(),
		ExpiresAt:    ts + h.service.MaxCommitmentAge(),
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.service.Register(ctx, requestcontext.Caller(ctx), req.params, req.fee)
	if err != nil {
		h.fail(w, r, "register failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toRegistrationResponse(req.params.Label, result))
}

func (h *Handler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RenewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	expiry, err := h.service.Renew(ctx, requestcontext.Caller(ctx), req.Label, req.Duration, req.fee)
	if err != nil {
		h.fail(w, r, "renew failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RenewalResponse{Label: req.Label, Expiry: expiry})
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
