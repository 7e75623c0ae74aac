package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bicns/internal/registrar/handler/mocks"
	"bicns/internal/registrar/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type RegistrarHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

var (
	caller = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	other  = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	now    = uint64(1_700_000_000)
)

func TestRegistrarHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistrarHandlerSuite))
}

func (s *RegistrarHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(s.service, logger)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithCaller(r.Context(), caller)
			ctx = requestcontext.WithTime(ctx, time.Unix(int64(now), 0))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.RegisterPublic(r)
	h.Register(r)
	s.router = r
}

func (s *RegistrarHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RegistrarHandlerSuite) TestGetLabel() {
	hash := domain.HashLabel("newname")
	path := "/registrar/labels/" + hash.Hex()

	s.Run("active lease shows owner", func() {
		s.service.EXPECT().Label(gomock.Any(), hash).Return(&models.Label{Hash: hash, Owner: other, Expiry: now + 100}, nil)
		s.service.EXPECT().Available(gomock.Any(), hash).Return(false, nil)

		rec := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusOK, rec.Code)
		var resp LabelResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.True(resp.Registered)
		s.Require().NotNil(resp.Owner)
		s.Equal(other, *resp.Owner)
		s.False(resp.InGrace)
	})

	s.Run("grace period hides owner", func() {
		s.service.EXPECT().Label(gomock.Any(), hash).Return(&models.Label{Hash: hash, Owner: other, Expiry: now - 1}, nil)
		s.service.EXPECT().Available(gomock.Any(), hash).Return(false, nil)

		rec := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusOK, rec.Code)
		var resp LabelResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Nil(resp.Owner)
		s.True(resp.InGrace)
	})

	s.Run("never registered", func() {
		s.service.EXPECT().Label(gomock.Any(), hash).Return(nil, nil)
		s.service.EXPECT().Available(gomock.Any(), hash).Return(true, nil)

		rec := s.do(http.MethodGet, path, nil)
		var resp LabelResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.False(resp.Registered)
		s.True(resp.Available)
	})
}

func (s *RegistrarHandlerSuite) TestTransfer() {
	hash := domain.HashLabel("newname")
	path := "/registrar/labels/" + hash.Hex() + "/transfer"

	s.Run("passes caller through", func() {
		s.service.EXPECT().TransferFrom(gomock.Any(), caller, caller, other, hash).Return(nil)
		rec := s.do(http.MethodPost, path, map[string]string{"from": caller.Hex(), "to": other.Hex()})
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("frozen lease maps to unauthorized", func() {
		s.service.EXPECT().TransferFrom(gomock.Any(), caller, caller, other, hash).
			Return(dErrors.New(dErrors.CodeUnauthorized, "name is expired or in its grace period"))
		rec := s.do(http.MethodPost, path, map[string]string{"from": caller.Hex(), "to": other.Hex()})
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("missing recipient", func() {
		rec := s.do(http.MethodPost, path, map[string]string{"from": caller.Hex()})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RegistrarHandlerSuite) TestReclaimAndApprove() {
	hash := domain.HashLabel("newname")

	s.service.EXPECT().Reclaim(gomock.Any(), caller, hash, other).Return(nil)
	rec := s.do(http.MethodPost, "/registrar/labels/"+hash.Hex()+"/reclaim", map[string]string{"owner": other.Hex()})
	s.Equal(http.StatusNoContent, rec.Code)

	s.service.EXPECT().Approve(gomock.Any(), caller, other, hash).Return(nil)
	rec = s.do(http.MethodPost, "/registrar/labels/"+hash.Hex()+"/approve", map[string]string{"to": other.Hex()})
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *RegistrarHandlerSuite) TestControllers() {
	s.Run("add", func() {
		s.service.EXPECT().AddController(gomock.Any(), caller, other).Return(nil)
		rec := s.do(http.MethodPut, "/registrar/controllers/"+other.Hex(), nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("remove by non-admin", func() {
		s.service.EXPECT().RemoveController(gomock.Any(), caller, other).
			Return(dErrors.New(dErrors.CodeUnauthorized, "only the admin manages controllers"))
		rec := s.do(http.MethodDelete, "/registrar/controllers/"+other.Hex(), nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("list", func() {
		s.service.EXPECT().Controllers(gomock.Any()).Return(nil, nil)
		rec := s.do(http.MethodGet, "/registrar/controllers", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"controllers":[]}`, rec.Body.String())
	})
}
