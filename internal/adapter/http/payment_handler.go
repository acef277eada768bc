package http

import (
	"net/http"

	"cupo-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type submitPaymentReq struct {
	AmountCOP     float64 `json:"amount_cop"     validate:"required,gt=0,dec2"`
	ProofRef      string  `json:"proof_ref"      validate:"required"`
	InstallmentID string  `json:"installment_id" validate:"omitempty,hex32"`
}

func (h *PaymentHandler) Submit(c echo.Context) error {
	userID, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	var req submitPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), payment.SubmitInput{
		LoanID:        c.Param("loan_id"),
		UserID:        userID,
		AmountCOP:     req.AmountCOP,
		ProofRef:      req.ProofRef,
		InstallmentID: req.InstallmentID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type reviewPaymentReq struct {
	Status          string `json:"status"           validate:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"rejection_reason" validate:"omitempty,min=3"`
}

func (h *PaymentHandler) Review(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid X-Actor-Id"})
	}
	var req reviewPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Review(c.Request().Context(), payment.ReviewInput{
		PaymentID:       c.Param("payment_id"),
		ActorID:         actor,
		Decision:        payment.Decision(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
