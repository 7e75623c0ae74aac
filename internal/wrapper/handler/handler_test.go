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

	"bicns/internal/wrapper/handler/mocks"
	"bicns/internal/wrapper/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type WrapperHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

var (
	caller   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	other    = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	resolver = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	now      = uint64(1_700_000_000)
)

func TestWrapperHandlerSuite(t *testing.T) {
	suite.Run(t, new(WrapperHandlerSuite))
}

func (s *WrapperHandlerSuite) SetupTest() {
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

func (s *WrapperHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
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

func (s *WrapperHandlerSuite) expectData(node common.Hash, name string, owner common.Address, fuses models.Fuses, expiry uint64) {
	encoded, err := domain.EncodeName(name)
	s.Require().NoError(err)
	s.service.EXPECT().GetData(gomock.Any(), node).Return(owner, fuses, expiry, nil)
	s.service.EXPECT().Names(gomock.Any(), node).Return(encoded, nil)
}

func (s *WrapperHandlerSuite) decode(rec *httptest.ResponseRecorder) DataResponse {
	var resp DataResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *WrapperHandlerSuite) TestGetData() {
	node := domain.BICSubnode("locked")

	s.Run("wrapped name", func() {
		s.expectData(node, "locked.bic", other, models.ParentCannotControl|models.CannotUnwrap, now+100)

		rec := s.do(http.MethodGet, "/wrapper/nodes/"+node.Hex(), nil)
		s.Equal(http.StatusOK, rec.Code)
		resp := s.decode(rec)
		s.Equal("locked.bic", resp.Name)
		s.Equal(other, resp.Owner)
		s.True(resp.Wrapped)
		s.Equal([]string{"CANNOT_UNWRAP", "PARENT_CANNOT_CONTROL"}, resp.FuseNames)
	})

	s.Run("unknown node reads empty", func() {
		s.service.EXPECT().GetData(gomock.Any(), node).Return(common.Address{}, models.CanDoEverything, uint64(0), nil)
		s.service.EXPECT().Names(gomock.Any(), node).Return(nil, nil)

		rec := s.do(http.MethodGet, "/wrapper/nodes/"+node.Hex(), nil)
		s.Equal(http.StatusOK, rec.Code)
		resp := s.decode(rec)
		s.False(resp.Wrapped)
		s.Empty(resp.Name)
		s.Equal([]string{}, resp.FuseNames)
	})

	s.Run("malformed node", func() {
		rec := s.do(http.MethodGet, "/wrapper/nodes/0x1234", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *WrapperHandlerSuite) TestWrap() {
	encoded, err := domain.EncodeName("sub.xyz")
	s.Require().NoError(err)
	node := domain.Namehash("sub.xyz")

	s.Run("encodes the dotted name", func() {
		s.service.EXPECT().Wrap(gomock.Any(), caller, encoded, other, resolver).Return(node, nil)
		s.expectData(node, "sub.xyz", other, models.CanDoEverything, 0)

		rec := s.do(http.MethodPost, "/wrapper/wrap", map[string]string{
			"name": "sub.xyz", "owner": other.Hex(), "resolver": resolver.Hex(),
		})
		s.Equal(http.StatusOK, rec.Code)
		s.Equal(node, s.decode(rec).Node)
	})

	s.Run("bic names are rejected by the service", func() {
		bic, err := domain.EncodeName("name.bic")
		s.Require().NoError(err)
		s.service.EXPECT().Wrap(gomock.Any(), caller, bic, other, common.Address{}).
			Return(common.Hash{}, dErrors.New(dErrors.CodeIncompatibleParent, "bic names are wrapped through wrapBIC2LD"))

		rec := s.do(http.MethodPost, "/wrapper/wrap", map[string]string{"name": "name.bic", "owner": other.Hex()})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("unknown fields rejected", func() {
		rec := s.do(http.MethodPost, "/wrapper/wrap", map[string]any{"name": "sub.xyz", "owner": other.Hex(), "fuses": 1})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *WrapperHandlerSuite) TestWrapBIC2LD() {
	node := domain.BICSubnode("newname")
	fuses := models.CannotUnwrap | models.CannotTransfer

	s.service.EXPECT().WrapBIC2LD(gomock.Any(), caller, "newname", other, fuses, models.MaxExpiry, common.Address{}).Return(now+100, nil)
	s.expectData(node, "newname.bic", other, fuses|models.ParentCannotControl, now+100)

	rec := s.do(http.MethodPost, "/wrapper/wrap-bic2ld", map[string]any{
		"label": "newname", "owner": other.Hex(), "fuses": uint32(fuses), "expiry": models.MaxExpiry,
	})
	s.Equal(http.StatusOK, rec.Code)
	resp := s.decode(rec)
	s.Equal(now+100, resp.Expiry)
	s.Equal(uint32(fuses|models.ParentCannotControl), resp.Fuses)
}

func (s *WrapperHandlerSuite) TestUnwrap() {
	parent := domain.Namehash("xyz")

	s.Run("label is hashed", func() {
		s.service.EXPECT().Unwrap(gomock.Any(), caller, parent, domain.HashLabel("sub"), other).Return(nil)
		rec := s.do(http.MethodPost, "/wrapper/unwrap", map[string]string{
			"parent": parent.Hex(), "label": "sub", "controller": other.Hex(),
		})
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("label and hash together", func() {
		rec := s.do(http.MethodPost, "/wrapper/unwrap", map[string]string{
			"parent": parent.Hex(), "label": "sub", "label_hash": domain.HashLabel("sub").Hex(), "controller": other.Hex(),
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("fuse blocks unwrap", func() {
		s.service.EXPECT().UnwrapBIC2LD(gomock.Any(), caller, domain.HashLabel("locked"), caller, other).
			Return(dErrors.New(dErrors.CodeOperationProhibited, "operation prohibited by CANNOT_UNWRAP"))
		rec := s.do(http.MethodPost, "/wrapper/unwrap-bic2ld", map[string]string{
			"label_hash": domain.HashLabel("locked").Hex(), "registrant": caller.Hex(), "controller": other.Hex(),
		})
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *WrapperHandlerSuite) TestSubnodes() {
	parent := domain.BICSubnode("parent")
	child := domain.MakeNode(parent, domain.HashLabel("sub"))
	path := "/wrapper/nodes/" + parent.Hex() + "/subnodes"

	s.Run("owner only", func() {
		s.service.EXPECT().SetSubnodeOwner(gomock.Any(), caller, parent, "sub", other, models.ParentCannotControl, now+50).Return(child, nil)
		s.expectData(child, "sub.parent.bic", other, models.ParentCannotControl, now+50)

		rec := s.do(http.MethodPost, path, map[string]any{
			"label": "sub", "owner": other.Hex(), "fuses": uint32(models.ParentCannotControl), "expiry": now + 50,
		})
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("sub.parent.bic", s.decode(rec).Name)
	})

	s.Run("resolver and ttl make a record", func() {
		s.service.EXPECT().SetSubnodeRecord(gomock.Any(), caller, parent, "sub", other, resolver, uint64(300), models.CanDoEverything, uint64(0)).Return(child, nil)
		s.expectData(child, "sub.parent.bic", other, models.CanDoEverything, 0)

		rec := s.do(http.MethodPost, path, map[string]any{
			"label": "sub", "owner": other.Hex(), "resolver": resolver.Hex(), "ttl": 300,
		})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("parent locked", func() {
		s.service.EXPECT().SetSubnodeOwner(gomock.Any(), caller, parent, "sub", other, models.CanDoEverything, uint64(0)).
			Return(common.Hash{}, dErrors.New(dErrors.CodeOperationProhibited, "operation prohibited by CANNOT_CREATE_SUBDOMAIN"))
		rec := s.do(http.MethodPost, path, map[string]any{"label": "sub", "owner": other.Hex()})
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *WrapperHandlerSuite) TestSetFusesAndTransfer() {
	node := domain.BICSubnode("locked")

	s.Run("burn", func() {
		merged := models.ParentCannotControl | models.CannotUnwrap
		s.service.EXPECT().SetFuses(gomock.Any(), caller, node, models.CannotUnwrap).Return(merged, nil)
		s.expectData(node, "locked.bic", caller, merged, now+100)

		rec := s.do(http.MethodPost, "/wrapper/nodes/"+node.Hex()+"/fuses", map[string]any{"fuses": uint32(models.CannotUnwrap)})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("empty burn", func() {
		rec := s.do(http.MethodPost, "/wrapper/nodes/"+node.Hex()+"/fuses", map[string]any{"fuses": 0})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("transfer", func() {
		s.service.EXPECT().SafeTransferFrom(gomock.Any(), caller, caller, other, node).Return(nil)
		s.expectData(node, "locked.bic", other, models.CanDoEverything, now+100)

		rec := s.do(http.MethodPost, "/wrapper/nodes/"+node.Hex()+"/transfer", map[string]string{"from": caller.Hex(), "to": other.Hex()})
		s.Equal(http.StatusOK, rec.Code)
		s.Equal(other, s.decode(rec).Owner)
	})
}

func (s *WrapperHandlerSuite) TestRecordFields() {
	node := domain.BICSubnode("name")

	s.service.EXPECT().SetResolver(gomock.Any(), caller, node, resolver).Return(nil)
	rec := s.do(http.MethodPut, "/wrapper/nodes/"+node.Hex()+"/resolver", map[string]string{"resolver": resolver.Hex()})
	s.Equal(http.StatusNoContent, rec.Code)

	s.service.EXPECT().SetTTL(gomock.Any(), caller, node, uint64(60)).
		Return(dErrors.New(dErrors.CodeOperationProhibited, "operation prohibited by CANNOT_SET_TTL"))
	rec = s.do(http.MethodPut, "/wrapper/nodes/"+node.Hex()+"/ttl", map[string]any{"ttl": 60})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *WrapperHandlerSuite) TestOperatorsAndControllers() {
	s.service.EXPECT().SetApprovalForAll(gomock.Any(), caller, other, true).Return(nil)
	rec := s.do(http.MethodPut, "/wrapper/operators/"+other.Hex(), map[string]bool{"approved": true})
	s.Equal(http.StatusOK, rec.Code)
	var approval ApprovalResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &approval))
	s.Equal(ApprovalResponse{Owner: caller, Operator: other, Approved: true}, approval)

	s.service.EXPECT().SetController(gomock.Any(), caller, other, false).
		Return(dErrors.New(dErrors.CodeUnauthorized, "only the admin manages controllers"))
	rec = s.do(http.MethodPut, "/wrapper/controllers/"+other.Hex(), map[string]bool{"active": false})
	s.Equal(http.StatusUnauthorized, rec.Code)
}
