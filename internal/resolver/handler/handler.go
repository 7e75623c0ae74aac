package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/httputil"
	"bicns/pkg/requestcontext"
)

type Service interface {
	Records(ctx context.Context, node common.Hash) (*models.Records, error)
	SetRecords(ctx context.Context, caller common.Address, node common.Hash, batch []models.RecordWrite) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/resolver/nodes/{node}", h.HandleGetRecords)
}

func (h *Handler) Register(r chi.Router) {
	r.Put("/resolver/nodes/{node}/records", h.HandleSetRecords)
}

func (h *Handler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	node, err := domain.ParseNode(chi.URLParam(r, "node"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeRecords(w, r, node)
}

func (h *Handler) HandleSetRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	node, err := domain.ParseNode(chi.URLParam(r, "node"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetRecordsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetRecords(ctx, requestcontext.Caller(ctx), node, req.Records); err != nil {
		h.fail(w, r, "set records failed", err)
		return
	}
	h.writeRecords(w, r, node)
}

func (h *Handler) writeRecords(w http.ResponseWriter, r *http.Request, node common.Hash) {
	rec, err := h.service.Records(r.Context(), node)
	if err != nil {
		h.fail(w, r, "failed to load records", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RecordsResponse{Node: node, Records: rec})
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
