package http

import (
	"net/http"

	"cupo-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	PrincipalCOP float64 `json:"principal_cop" validate:"required,gte=100000,lte=1000000,intlike"`
	TermMonths   int     `json:"term_months"   validate:"required,oneof=2 3"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	userID, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		UserID:       userID,
		PrincipalCOP: req.PrincipalCOP,
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	userID, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetActive(c echo.Context) error {
	userID, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	dto, err := h.uc.GetActive(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	if dto == nil {
		return c.JSON(http.StatusOK, map[string]any{"loan": nil, "installments": []any{}})
	}
	return c.JSON(http.StatusOK, dto)
}

type upsertAccountReq struct {
	BankName              string `json:"bank_name"               validate:"required,min=2,max=120"`
	AccountType           string `json:"account_type"            validate:"required,oneof=SAVINGS CHECKING"`
	AccountNumber         string `json:"account_number"          validate:"required,min=5,max=50"`
	AccountHolderName     string `json:"account_holder_name"     validate:"required,min=3,max=120"`
	AccountHolderDocument string `json:"account_holder_document" validate:"required,min=5,max=30"`
}

func (h *LoanHandler) UpsertDisbursementAccount(c echo.Context) error {
	userID, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	var req upsertAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpsertDisbursementAccount(c.Request().Context(), loan.UpsertAccountInput{
		LoanID:                c.Param("loan_id"),
		UserID:                userID,
		BankName:              req.BankName,
		AccountType:           req.AccountType,
		AccountNumber:         req.AccountNumber,
		AccountHolderName:     req.AccountHolderName,
		AccountHolderDocument: req.AccountHolderDocument,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ---- admin ----

func (h *LoanHandler) Approve(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectLoanReq struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

func (h *LoanHandler) Reject(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"), actor, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) VerifyDisbursementAccount(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	dto, err := h.uc.VerifyDisbursementAccount(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
