package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"bicns/internal/wrapper/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

// Service is the wrapper surface exposed over HTTP. Controller-only operations
// are reached through the registration controller.
type Service interface {
	GetData(ctx context.Context, node common.Hash) (common.Address, models.Fuses, uint64, error)
	Names(ctx context.Context, node common.Hash) ([]byte, error)
	Wrap(ctx context.Context, caller common.Address, name []byte, wrappedOwner, resolver common.Address) (common.Hash, error)
	WrapBIC2LD(ctx context.Context, caller common.Address, label string, wrappedOwner common.Address, fuses models.Fuses, expiry uint64, resolver common.Address) (uint64, error)
	Unwrap(ctx context.Context, caller common.Address, parent, labelHash common.Hash, controller common.Address) error
	UnwrapBIC2LD(ctx context.Context, caller common.Address, labelHash common.Hash, registrant, controller common.Address) error
	SetSubnodeOwner(ctx context.Context, caller common.Address, parent common.Hash, label string, owner common.Address, fuses models.Fuses, expiry uint64) (common.Hash, error)
	SetSubnodeRecord(ctx context.Context, caller common.Address, parent common.Hash, label string, owner, resolver common.Address, ttl uint64, fuses models.Fuses, expiry uint64) (common.Hash, error)
	SetFuses(ctx context.Context, caller common.Address, node common.Hash, fuses models.Fuses) (models.Fuses, error)
	SafeTransferFrom(ctx context.Context, caller, from, to common.Address, node common.Hash) error
	SetResolver(ctx context.Context, caller common.Address, node common.Hash, resolver common.Address) error
	SetTTL(ctx context.Context, caller common.Address, node common.Hash, ttl uint64) error
	SetApprovalForAll(ctx context.Context, caller, operator common.Address, approved bool) error
	SetController(ctx context.Context, caller, controller common.Address, active bool) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/wrapper/nodes/{node}", h.HandleGetData)
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/wrapper/wrap", h.HandleWrap)
	r.Post("/wrapper/wrap-bic2ld", h.HandleWrapBIC2LD)
	r.Post("/wrapper/unwrap", h.HandleUnwrap)
	r.Post("/wrapper/unwrap-bic2ld", h.HandleUnwrapBIC2LD)
	r.Post("/wrapper/nodes/{node}/subnodes", h.HandleSetSubnode)
	r.Post("/wrapper/nodes/{node}/fuses", h.HandleSetFuses)
	r.Post("/wrapper/nodes/{node}/transfer", h.HandleTransfer)
	r.Put("/wrapper/nodes/{node}/resolver", h.HandleSetResolver)
	r.Put("/wrapper/nodes/{node}/ttl", h.HandleSetTTL)
	r.Put("/wrapper/operators/{operator}", h.HandleSetApproval)
	r.Put("/wrapper/controllers/{address}", h.HandleSetController)
}

func (h *Handler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	h.writeData(w, r, node)
}

func (h *Handler) HandleWrap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[WrapRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	node, err := h.service.Wrap(ctx, requestcontext.Caller(ctx), req.encoded, req.owner, req.resolver)
	if err != nil {
		h.fail(w, r, "wrap failed", err)
		return
	}
	h.writeData(w, r, node)
}

func (h *Handler) HandleWrapBIC2LD(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[WrapBIC2LDRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	_, err := h.service.WrapBIC2LD(ctx, requestcontext.Caller(ctx), req.Label, req.owner, models.Fuses(req.Fuses), req.Expiry, req.resolver)
	if err != nil {
		h.fail(w, r, "wrap failed", err)
		return
	}
	h.writeData(w, r, domain.BICSubnode(req.Label))
}

func (h *Handler) HandleUnwrap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UnwrapRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.Unwrap(ctx, requestcontext.Caller(ctx), req.parent, req.labelHash, req.controller); err != nil {
		h.fail(w, r, "unwrap failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUnwrapBIC2LD(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UnwrapBIC2LDRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.UnwrapBIC2LD(ctx, requestcontext.Caller(ctx), req.labelHash, req.registrant, req.controller); err != nil {
		h.fail(w, r, "unwrap failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetSubnode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	parent, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubnodeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	caller := requestcontext.Caller(ctx)
	fuses := models.Fuses(req.Fuses)

	var (
		child common.Hash
		err   error
	)
	if req.isRecord() {
		child, err = h.service.SetSubnodeRecord(ctx, caller, parent, req.Label, req.owner, req.resolver, req.ttl(), fuses, req.Expiry)
	} else {
		child, err = h.service.SetSubnodeOwner(ctx, caller, parent, req.Label, req.owner, fuses, req.Expiry)
	}
	if err != nil {
		h.fail(w, r, "set subnode failed", err)
		return
	}
	h.writeData(w, r, child)
}

func (h *Handler) HandleSetFuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetFusesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if _, err := h.service.SetFuses(ctx, requestcontext.Caller(ctx), node, models.Fuses(req.Fuses)); err != nil {
		h.fail(w, r, "set fuses failed", err)
		return
	}
	h.writeData(w, r, node)
}

func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SafeTransferFrom(ctx, requestcontext.Caller(ctx), req.from, req.to, node); err != nil {
		h.fail(w, r, "transfer failed", err)
		return
	}
	h.writeData(w, r, node)
}

func (h *Handler) HandleSetResolver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetResolverRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetResolver(ctx, requestcontext.Caller(ctx), node, req.resolver); err != nil {
		h.fail(w, r, "set resolver failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetTTL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetTTLRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetTTL(ctx, requestcontext.Caller(ctx), node, req.TTL); err != nil {
		h.fail(w, r, "set ttl failed", err)
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

func (h *Handler) HandleSetController(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetControllerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetController(ctx, requestcontext.Caller(ctx), address, req.Active); err != nil {
		h.fail(w, r, "set controller failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, node common.Hash) {
	ctx := r.Context()
	owner, fuses, expiry, err := h.service.GetData(ctx, node)
	if err != nil {
		h.fail(w, r, "failed to load wrapped name", err)
		return
	}
	name, err := h.service.Names(ctx, node)
	if err != nil {
		h.fail(w, r, "failed to load wrapped name", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDataResponse(node, name, owner, fuses, expiry))
}

func (h *Handler) nodeParam(w http.ResponseWriter, r *http.Request) (common.Hash, bool) {
	node, err := domain.ParseNode(chi.URLParam(r, "node"))
	if err != nil {
		httputil.WriteError(w, err)
		return common.Hash{}, false
	}
	return node, true
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
