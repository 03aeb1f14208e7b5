package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/dropapi/base/ctx"
	bValidator "github.com/x-xyz/dropapi/base/validator"
	"github.com/x-xyz/dropapi/domain"
	"github.com/x-xyz/dropapi/domain/token"
	"github.com/x-xyz/dropapi/middleware"
)

// stubUsecase overrides only the operations a test exercises.
type stubUsecase struct {
	token.Usecase
	transferTo     domain.Address
	transferAmount string
}

func (s *stubUsecase) Transfer(_ bCtx.Ctx, _ domain.ChainId, _, to domain.Address, amount string) (*domain.TransactionResult, error) {
	s.transferTo = to
	s.transferAmount = amount
	return &domain.TransactionResult{Status: domain.TxStatusConfirmed, TxHash: "0x1"}, nil
}

func (s *stubUsecase) BalanceOf(_ bCtx.Ctx, _ domain.ChainId, _, _ domain.Address) (*domain.CurrencyValue, error) {
	return &domain.CurrencyValue{Value: "0", DisplayValue: "0"}, nil
}

func newTestServer(uc token.Usecase) *echo.Echo {
	e := echo.New()
	e.Validator = bValidator.NewCustomValidator(validator.New())
	middL := middleware.InitMiddleware()
	e.Use(middL.AddContext())
	New(e, uc, nil, nil)
	return e
}

const (
	tokenPath = "/token/1/0x00000000000000000000000000000000000000aa"
	toAddr    = "0x00000000000000000000000000000000000000bb"
)

func TestTransferBindsAndValidates(t *testing.T) {
	uc := &stubUsecase{}
	e := newTestServer(uc)

	req := httptest.NewRequest(http.MethodPost, tokenPath+"/transfer",
		strings.NewReader(`{"to":"`+toAddr+`","amount":"1.5"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.Address(toAddr), uc.transferTo)
	require.Equal(t, "1.5", uc.transferAmount)
}

func TestTransferRejectsBadRecipient(t *testing.T) {
	e := newTestServer(&stubUsecase{})

	req := httptest.NewRequest(http.MethodPost, tokenPath+"/transfer",
		strings.NewReader(`{"to":"not-an-address","amount":"1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransferRequiresAmount(t *testing.T) {
	e := newTestServer(&stubUsecase{})

	req := httptest.NewRequest(http.MethodPost, tokenPath+"/transfer",
		strings.NewReader(`{"to":"`+toAddr+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectsInvalidTokenAddress(t *testing.T) {
	e := newTestServer(&stubUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/token/1/zzz/balance/"+toAddr, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectsNonNumericChainId(t *testing.T) {
	e := newTestServer(&stubUsecase{})

	req := httptest.NewRequest(http.MethodGet, tokenPath+"/balance/"+toAddr, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/token/mainnet/0x00000000000000000000000000000000000000aa/balance/"+toAddr, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
