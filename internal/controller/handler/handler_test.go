package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bicns/internal/controller/handler/mocks"
	"bicns/internal/controller/models"
	resolvermodels "bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type ControllerHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

var (
	caller   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	resolver = common.HexToAddress("0x00000000000000000000000000000000000000e5")
	secret   = common.HexToHash("0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
)

func TestControllerHandlerSuite(t *testing.T) {
	suite.Run(t, new(ControllerHandlerSuite))
}

func (s *ControllerHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithCaller(r.Context(), caller)))
		})
	})
	h.RegisterPublic(r)
	h.Register(r)
	s.router = r
}

func (s *ControllerHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func bigEq(v string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		b, ok := x.(*big.Int)
		return ok && b.String() == v
	})
}

func paramsBody() map[string]any {
	return map[string]any{
		"label":    "newname",
		"owner":    caller.Hex(),
		"duration": 28 * 24 * 3600,
		"secret":   secret.Hex(),
	}
}

func (s *ControllerHandlerSuite) TestLabel() {
	s.service.EXPECT().Available(gomock.Any(), "newname").Return(true, nil)
	s.service.EXPECT().Valid("newname").Return(true)

	rec := s.do(http.MethodGet, "/controller/labels/newname", nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp LabelResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(LabelResponse{Label: "newname", Valid: true, Available: true}, resp)
}

func (s *ControllerHandlerSuite) TestPrice() {
	s.Run("explicit duration", func() {
		s.service.EXPECT().RentPrice("newname", uint64(86400)).
			Return(models.Price{Base: big.NewInt(86400), Premium: big.NewInt(5)})

		rec := s.do(http.MethodGet, "/controller/labels/newname/price?duration=86400", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp PriceResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("86400", resp.Base)
		s.Equal("5", resp.Premium)
		s.Equal("86405", resp.Total)
	})

	s.Run("defaults to the minimum lease", func() {
		s.service.EXPECT().RentPrice("newname", models.MinRegistrationDuration).Return(models.Price{})

		rec := s.do(http.MethodGet, "/controller/labels/newname/price", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("bad duration", func() {
		rec := s.do(http.MethodGet, "/controller/labels/newname/price?duration=-1", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ControllerHandlerSuite) TestMakeCommitment() {
	hash := common.HexToHash("0xc0ffee")
	want := models.RegisterParams{
		Label:    "newname",
		Owner:    caller,
		Duration: 28 * 24 * 3600,
		Secret:   secret,
		Resolver: resolver,
		Data:     []resolvermodels.RecordWrite{{Kind: resolvermodels.KindName, Value: "newname.bic"}},
	}
	s.service.EXPECT().MakeCommitment(want).Return(hash, nil)

	body := paramsBody()
	body["resolver"] = resolver.Hex()
	body["data"] = []map[string]string{{"kind": "name", "value": "newname.bic"}}
	rec := s.do(http.MethodPost, "/controller/commitments/make", body)
	s.Equal(http.StatusOK, rec.Code)

	var resp CommitmentResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(hash, resp.Commitment)
}

func (s *ControllerHandlerSuite) TestMakeCommitmentRejectsBadSecret() {
	body := paramsBody()
	body["secret"] = "0x1234"
	rec := s.do(http.MethodPost, "/controller/commitments/make", body)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ControllerHandlerSuite) TestCommit() {
	hash := common.HexToHash("0xc0ffee")

	s.Run("stores and reports the window", func() {
		s.service.EXPECT().Commit(gomock.Any(), caller, hash).Return(nil)
		s.service.EXPECT().Commitments(gomock.Any(), hash).Return(uint64(1000), nil)
		s.service.EXPECT().MinCommitmentAge().Return(uint64(600))
		s.service.EXPECT().MaxCommitmentAge().Return(uint64(86400))

		rec := s.do(http.MethodPost, "/controller/commitments", map[string]string{"commitment": hash.Hex()})
		s.Equal(http.StatusCreated, rec.Code)

		var resp CommitmentResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(CommitmentResponse{Commitment: hash, Timestamp: 1000, RevealableAt: 1600, ExpiresAt: 87400}, resp)
	})

	s.Run("pending duplicate", func() {
		s.service.EXPECT().Commit(gomock.Any(), caller, hash).
			Return(dErrors.New(dErrors.CodeCommitmentTooNew, "commitment is already pending"))

		rec := s.do(http.MethodPost, "/controller/commitments", map[string]string{"commitment": hash.Hex()})
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *ControllerHandlerSuite) TestGetCommitment() {
	hash := common.HexToHash("0xc0ffee")

	s.Run("unknown", func() {
		s.service.EXPECT().Commitments(gomock.Any(), hash).Return(uint64(0), dErrors.New(dErrors.CodeNotFound, "commitment not found"))
		rec := s.do(http.MethodGet, "/controller/commitments/"+hash.Hex(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed", func() {
		rec := s.do(http.MethodGet, "/controller/commitments/c0ffee", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ControllerHandlerSuite) TestRegister() {
	node := domain.BICSubnode("newname")

	s.Run("registers", func() {
		s.service.EXPECT().Register(gomock.Any(), caller, gomock.Any(), bigEq("2419200")).
			DoAndReturn(func(_ context.Context, _ common.Address, p models.RegisterParams, _ *big.Int) (models.Registration, error) {
				s.Equal("newname", p.Label)
				s.Equal(secret, p.Secret)
				return models.Registration{
					Node:   node,
					Expiry: 4000,
					Price:  models.Price{Base: big.NewInt(2419200), Premium: big.NewInt(0)},
				}, nil
			})

		body := paramsBody()
		body["fee"] = "2419200"
		rec := s.do(http.MethodPost, "/controller/registrations", body)
		s.Equal(http.StatusCreated, rec.Code)

		var resp RegistrationResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(node, resp.Node)
		s.Equal("newname.bic", resp.Name)
		s.Equal(uint64(4000), resp.Expiry)
		s.Equal("2419200", resp.BaseCost)
		s.Equal("0", resp.Premium)
	})

	s.Run("maps domain errors", func() {
		cases := []struct {
			code   dErrors.Code
			status int
		}{
			{dErrors.CodeCommitmentNotFound, http.StatusNotFound},
			{dErrors.CodeCommitmentTooNew, http.StatusConflict},
			{dErrors.CodeNameNotAvailable, http.StatusConflict},
			{dErrors.CodeInsufficientFee, http.StatusPaymentRequired},
		}
		for _, tc := range cases {
			s.service.EXPECT().Register(gomock.Any(), caller, gomock.Any(), gomock.Any()).
				Return(models.Registration{}, dErrors.New(tc.code, "failed"))
			body := paramsBody()
			body["fee"] = "1"
			rec := s.do(http.MethodPost, "/controller/registrations", body)
			s.Equal(tc.status, rec.Code, string(tc.code))
		}
	})

	s.Run("fee required", func() {
		rec := s.do(http.MethodPost, "/controller/registrations", paramsBody())
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown field", func() {
		body := paramsBody()
		body["fee"] = "1"
		body["referrer"] = caller.Hex()
		rec := s.do(http.MethodPost, "/controller/registrations", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ControllerHandlerSuite) TestRenew() {
	s.Run("renews", func() {
		s.service.EXPECT().Renew(gomock.Any(), caller, "newname", uint64(86400), bigEq("86400")).Return(uint64(9000), nil)

		rec := s.do(http.MethodPost, "/controller/renewals", map[string]any{"label": "newname", "duration": 86400, "fee": "86400"})
		s.Equal(http.StatusOK, rec.Code)

		var resp RenewalResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(RenewalResponse{Label: "newname", Expiry: 9000}, resp)
	})

	s.Run("expired", func() {
		s.service.EXPECT().Renew(gomock.Any(), caller, "newname", uint64(86400), gomock.Any()).
			Return(uint64(0), dErrors.New(dErrors.CodeNameExpired, "name expired"))

		rec := s.do(http.MethodPost, "/controller/renewals", map[string]any{"label": "newname", "duration": 86400, "fee": "86400"})
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("negative fee", func() {
		rec := s.do(http.MethodPost, "/controller/renewals", map[string]any{"label": "newname", "duration": 86400, "fee": "-1"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
