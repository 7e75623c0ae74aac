package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"bicns/internal/registry/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

// Service is the registry surface the handler needs.
type Service interface {
	Record(ctx context.Context, node common.Hash) (models.Record, error)
	SetOwner(ctx context.Context, caller common.Address, node common.Hash, owner common.Address) error
	SetResolver(ctx context.Context, caller common.Address, node common.Hash, resolver common.Address) error
	SetTTL(ctx context.Context, caller common.Address, node common.Hash, ttl uint64) error
	SetRecord(ctx context.Context, caller common.Address, node common.Hash, owner, resolver common.Address, ttl uint64) error
	SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error)
	SetSubnodeRecord(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner, resolver common.Address, ttl uint64) (common.Hash, error)
	SetApprovalForAll(ctx context.Context, caller, operator common.Address, approved bool) error
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the read-only routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/registry/nodes/{node}", h.HandleGetRecord)
	r.Get("/registry/operators/{owner}/{operator}", h.HandleGetApproval)
}

// Register mounts the routes that act on behalf of the authenticated caller.
func (h *Handler) Register(r chi.Router) {
	r.Put("/registry/nodes/{node}", h.HandleSetRecord)
	r.Put("/registry/nodes/{node}/owner", h.HandleSetOwner)
	r.Put("/registry/nodes/{node}/resolver", h.HandleSetResolver)
	r.Put("/registry/nodes/{node}/ttl", h.HandleSetTTL)
	r.Post("/registry/nodes/{node}/subnodes", h.HandleSetSubnode)
	r.Put("/registry/operators/{operator}", h.HandleSetApproval)
}

func (h *Handler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Record(r.Context(), node)
	if err != nil {
		h.fail(w, r, "failed to load record", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRecordResponse(node, rec))
}

func (h *Handler) HandleGetApproval(w http.ResponseWriter, r *http.Request) {
	owner, err := domain.ParseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	operator, err := domain.ParseAddress(chi.URLParam(r, "operator"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	approved, err := h.service.IsApprovedForAll(r.Context(), owner, operator)
	if err != nil {
		h.fail(w, r, "failed to load approval", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ApprovalResponse{Owner: owner, Operator: operator, Approved: approved})
}

func (h *Handler) HandleSetOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetOwnerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetOwner(ctx, requestcontext.Caller(ctx), node, req.owner); err != nil {
		h.fail(w, r, "set owner failed", err)
		return
	}
	h.writeRecord(w, r, node)
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
	h.writeRecord(w, r, node)
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
	h.writeRecord(w, r, node)
}

func (h *Handler) HandleSetRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetRecordRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetRecord(ctx, requestcontext.Caller(ctx), node, req.owner, req.resolver, req.TTL); err != nil {
		h.fail(w, r, "set record failed", err)
		return
	}
	h.writeRecord(w, r, node)
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

	var (
		child common.Hash
		err   error
	)
	if req.isRecord() {
		child, err = h.service.SetSubnodeRecord(ctx, caller, parent, req.labelHash, req.owner, req.resolver, req.ttl())
	} else {
		child, err = h.service.SetSubnodeOwner(ctx, caller, parent, req.labelHash, req.owner)
	}
	if err != nil {
		h.fail(w, r, "set subnode failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SubnodeResponse{Node: child})
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

func (h *Handler) writeRecord(w http.ResponseWriter, r *http.Request, node common.Hash) {
	rec, err := h.service.Record(r.Context(), node)
	if err != nil {
		h.fail(w, r, "failed to load record", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRecordResponse(node, rec))
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
