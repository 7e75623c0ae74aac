package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"bicns/internal/registrar/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

// Service is the registrar surface exposed over HTTP. Register and Renew are
// reachable only through the controller.
type Service interface {
	Label(ctx context.Context, hash common.Hash) (*models.Label, error)
	Available(ctx context.Context, hash common.Hash) (bool, error)
	TransferFrom(ctx context.Context, caller, from, to common.Address, hash common.Hash) error
	Reclaim(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address) error
	Approve(ctx context.Context, caller, to common.Address, hash common.Hash) error
	SetApprovalForAll(ctx context.Context, caller, operator common.Address, approved bool) error
	AddController(ctx context.Context, caller, controller common.Address) error
	RemoveController(ctx context.Context, caller, controller common.Address) error
	Controllers(ctx context.Context) ([]common.Address, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/registrar/labels/{labelHash}", h.HandleGetLabel)
	r.Get("/registrar/controllers", h.HandleListControllers)
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/registrar/labels/{labelHash}/transfer", h.HandleTransfer)
	r.Post("/registrar/labels/{labelHash}/reclaim", h.HandleReclaim)
	r.Post("/registrar/labels/{labelHash}/approve", h.HandleApprove)
	r.Put("/registrar/operators/{operator}", h.HandleSetApproval)
	r.Put("/registrar/controllers/{address}", h.HandleAddController)
	r.Delete("/registrar/controllers/{address}", h.HandleRemoveController)
}

func (h *Handler) HandleGetLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash, ok := h.labelParam(w, r)
	if !ok {
		return
	}
	label, err := h.service.Label(ctx, hash)
	if err != nil {
		h.fail(w, r, "failed to load label", err)
		return
	}
	available, err := h.service.Available(ctx, hash)
	if err != nil {
		h.fail(w, r, "failed to check availability", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLabelResponse(hash, label, available, requestcontext.NowUnix(ctx)))
}

func (h *Handler) HandleListControllers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Controllers(r.Context())
	if err != nil {
		h.fail(w, r, "failed to list controllers", err)
		return
	}
	if list == nil {
		list = []common.Address{}
	}
	httputil.WriteJSON(w, http.StatusOK, ControllersResponse{Controllers: list})
}

func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash, ok := h.labelParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.TransferFrom(ctx, requestcontext.Caller(ctx), req.from, req.to, hash); err != nil {
		h.fail(w, r, "transfer failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleReclaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash, ok := h.labelParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReclaimRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Reclaim(ctx, requestcontext.Caller(ctx), hash, req.owner); err != nil {
		h.fail(w, r, "reclaim failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash, ok := h.labelParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ApproveRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Approve(ctx, requestcontext.Caller(ctx), req.to, hash); err != nil {
		h.fail(w, r, "approve failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetApproval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	operator, err := domain.ParseAddress(chi.URLParam(r, "operator"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetApprovalRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	caller := requestcontext.Caller(ctx)
	if err := h.service.SetApprovalForAll(ctx, caller, operator, req.Approved); err != nil {
		h.fail(w, r, "set approval failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ApprovalResponse{Owner: caller, Operator: operator, Approved: req.Approved})
}

func (h *Handler) HandleAddController(w http.ResponseWriter, r *http.Request) {
	h.setController(w, r, h.service.AddController)
}

func (h *Handler) HandleRemoveController(w http.ResponseWriter, r *http.Request) {
	h.setController(w, r, h.service.RemoveController)
}

func (h *Handler) setController(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, caller, controller common.Address) error) {
	ctx := r.Context()
	address, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := op(ctx, requestcontext.Caller(ctx), address); err != nil {
		h.fail(w, r, "controller update failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) labelParam(w http.ResponseWriter, r *http.Request) (common.Hash, bool) {
	hash, err := domain.ParseLabelHash(chi.URLParam(r, "labelHash"))
	if err != nil {
		httputil.WriteError(w, err)
		return common.Hash{}, false
	}
	return hash, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"caller", requestcontext.Caller(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}
