package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	domain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/domain/params"
	"peerlend-backend/internal/domain/transfer"
	"peerlend-backend/internal/testutil/memstore"
	"peerlend-backend/internal/testutil/transfermock"
	uc "peerlend-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

const (
	borrowerID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	lenderID   = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	treasuryID = "cccccccccccccccccccccccccccccccc"
)

type env struct {
	e      *echo.Echo
	assets *transfermock.Adapter
	h      *LoanHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memstore.New(params.Params{PlatformFeeBps: 50, GracePeriod: 24 * time.Hour})
	assets := &transfermock.Adapter{}
	store.Assets = assets
	usecase := uc.NewUsecase(store, store, nil, nil, treasuryID)
	return &env{e: newEchoWithValidator(), assets: assets, h: NewLoanHandler(usecase)}
}

func (v *env) do(t *testing.T, method, path string, body any, pathParam string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		reader = mustJSON(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := v.e.NewContext(req, rec)
	if pathParam != "" {
		c.SetParamNames("loan_id")
		c.SetParamValues(pathParam)
	}
	var err error
	switch {
	case method == stdhttp.MethodPost && path == "/loans":
		err = v.h.RequestLoan(c)
	case strings.HasSuffix(path, "/fund"):
		err = v.h.FundLoan(c)
	case strings.HasSuffix(path, "/repay"):
		err = v.h.RepayLoan(c)
	case strings.HasSuffix(path, "/liquidate"):
		err = v.h.LiquidateLoan(c)
	default:
		err = v.h.GetLoan(c)
	}
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func requestBody() map[string]any {
	return map[string]any{
		"borrower":            borrowerID,
		"principal":           1000,
		"interest_rate_bps":   1000,
		"duration_seconds":    86400,
		"collateral_amount":   500,
		"collateral_kind":     "native",
		"supplied_collateral": 500,
	}
}

func createLoan(t *testing.T, v *env) uint64 {
	t.Helper()
	rec := v.do(t, stdhttp.MethodPost, "/loans", requestBody(), "")
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("request loan status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return dto.LoanID
}

func fundLoan(t *testing.T, v *env, id uint64) {
	t.Helper()
	rec := v.do(t, stdhttp.MethodPost, "/loans/"+strconv.FormatUint(id, 10)+"/fund",
		map[string]any{"lender": lenderID, "supplied_principal": 1000}, strconv.FormatUint(id, 10))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("fund status = %d, body=%s", rec.Code, rec.Body.String())
	}
}

// -------- tests --------

func TestRequestLoan_Created(t *testing.T) {
	v := newEnv(t)
	rec := v.do(t, stdhttp.MethodPost, "/loans", requestBody(), "")
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.LoanID != 0 || dto.Status != "requested" || dto.TotalOwed != 1100 {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestRequestLoan_ValidationDetails(t *testing.T) {
	v := newEnv(t)
	body := requestBody()
	body["borrower"] = "not-hex"
	body["interest_rate_bps"] = 12000
	rec := v.do(t, stdhttp.MethodPost, "/loans", body, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !containsFieldMsg(resp.Details, "Borrower", "hex") {
		t.Fatalf("missing borrower field error: %+v", resp.Details)
	}
	if !containsFieldMsg(resp.Details, "InterestRateBps", "less than") {
		t.Fatalf("missing rate field error: %+v", resp.Details)
	}
}

func TestRequestLoan_TokenNeedsTokenID(t *testing.T) {
	v := newEnv(t)
	body := requestBody()
	body["collateral_kind"] = "token"
	delete(body, "supplied_collateral")
	rec := v.do(t, stdhttp.MethodPost, "/loans", body, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequestLoan_CollateralMismatchIs400(t *testing.T) {
	v := newEnv(t)
	body := requestBody()
	body["supplied_collateral"] = 499
	rec := v.do(t, stdhttp.MethodPost, "/loans", body, "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
}

func TestFundLoan_OKThenConflict(t *testing.T) {
	v := newEnv(t)
	id := createLoan(t, v)
	fundLoan(t, v, id)

	rec := v.do(t, stdhttp.MethodPost, "/loans/0/fund",
		map[string]any{"lender": lenderID, "supplied_principal": 1000}, "0")
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("second fund status = %d, want 409", rec.Code)
	}
}

func TestFundLoan_NotFoundIs404(t *testing.T) {
	v := newEnv(t)
	rec := v.do(t, stdhttp.MethodPost, "/loans/9/fund",
		map[string]any{"lender": lenderID, "supplied_principal": 1000}, "9")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestFundLoan_TransferFailureIs422(t *testing.T) {
	v := newEnv(t)
	id := createLoan(t, v)
	v.assets.PayoutFn = func(context.Context, domain.Asset, string, uint64) error {
		return transfer.ErrInsufficientBalance
	}
	rec := v.do(t, stdhttp.MethodPost, "/loans/0/fund",
		map[string]any{"lender": lenderID, "supplied_principal": 1000}, strconv.FormatUint(id, 10))
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestRepayLoan_WrongCallerIs403(t *testing.T) {
	v := newEnv(t)
	id := createLoan(t, v)
	fundLoan(t, v, id)

	rec := v.do(t, stdhttp.MethodPost, "/loans/0/repay",
		map[string]any{"borrower": lenderID, "amount": 100}, "0")
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRepayLoan_OverpaymentIs409(t *testing.T) {
	v := newEnv(t)
	id := createLoan(t, v)
	fundLoan(t, v, id)

	rec := v.do(t, stdhttp.MethodPost, "/loans/0/repay",
		map[string]any{"borrower": borrowerID, "amount": 1101}, "0")
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLiquidateLoan_TooEarlyIs409(t *testing.T) {
	v := newEnv(t)
	id := createLoan(t, v)
	fundLoan(t, v, id)

	rec := v.do(t, stdhttp.MethodPost, "/loans/0/liquidate",
		map[string]any{"lender": lenderID}, "0")
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetLoan_RoundtripAndBadID(t *testing.T) {
	v := newEnv(t)
	createLoan(t, v)

	rec := v.do(t, stdhttp.MethodGet, "/loans/0", nil, "0")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var dto uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Borrower != borrowerID {
		t.Fatalf("dto = %+v", dto)
	}

	rec = v.do(t, stdhttp.MethodGet, "/loans/abc", nil, "abc")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("non-numeric id status = %d, want 400", rec.Code)
	}

	rec = v.do(t, stdhttp.MethodGet, "/loans/5", nil, "5")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", rec.Code)
	}
}
