package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"

	domainPayment "cupo-backend/internal/domain/payment"
	paymentUC "cupo-backend/internal/usecase/payment"
	"cupo-backend/pkg/id"
)

func submitPayment(t *testing.T, s *testServer, loanID, userID string, amount float64) paymentUC.PaymentDTO {
	t.Helper()
	c, rec := s.newJSONContext(stdhttp.MethodPost, "/loans/"+loanID+"/payments", mustJSON(map[string]any{
		"amount_cop": amount,
		"proof_ref":  "receipts/2026/08/wire.jpg",
	}), userID)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	if err := s.payH.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("submit status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var dto paymentUC.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	return dto
}

func TestSubmitPayment_Success(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)
	l := s.seedDisbursedLoan(t, p.UserID)

	dto := submitPayment(t, s, l.LoanID, p.UserID, 51256.63)
	if dto.Status != string(domainPayment.StatusSubmitted) {
		t.Fatalf("status = %s, want SUBMITTED", dto.Status)
	}
	if dto.LoanID != l.LoanID {
		t.Fatalf("loan_id = %s, want %s", dto.LoanID, l.LoanID)
	}
}

func TestSubmitPayment_ValidationError(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)
	l := s.seedDisbursedLoan(t, p.UserID)

	c, rec := s.newJSONContext(stdhttp.MethodPost, "/loans/"+l.LoanID+"/payments", mustJSON(map[string]any{
		"amount_cop":     51256.6333, // too many decimals
		"installment_id": "NOT_HEX",
	}), p.UserID)
	c.SetParamNames("loan_id")
	c.SetParamValues(l.LoanID)

	if err := s.payH.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "AmountCOP", "at most 2 decimal places") {
		t.Fatalf("missing dec2 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "ProofRef", "is required") {
		t.Fatalf("missing proof_ref detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "InstallmentID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", er.Details)
	}
}

func TestSubmitPayment_ForeignLoanForbidden(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)
	l := s.seedDisbursedLoan(t, p.UserID)

	c, rec := s.newJSONContext(stdhttp.MethodPost, "/loans/"+l.LoanID+"/payments", mustJSON(map[string]any{
		"amount_cop": 100.00,
		"proof_ref":  "receipts/wire.jpg",
	}), id.NewID32())
	c.SetParamNames("loan_id")
	c.SetParamValues(l.LoanID)

	if err := s.payH.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestReviewPayment_ApproveAndReplayConflict(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)
	l := s.seedDisbursedLoan(t, p.UserID)
	submitted := submitPayment(t, s, l.LoanID, p.UserID, 51256.63)
	admin := id.NewID32()

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/payments/"+submitted.PaymentID+"/review", mustJSON(map[string]any{
		"status": "APPROVED",
	}), admin)
	c.SetParamNames("payment_id")
	c.SetParamValues(submitted.PaymentID)
	if err := s.payH.Review(c); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("review status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var dto paymentUC.PaymentDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &dto)
	if dto.Status != string(domainPayment.StatusApproved) {
		t.Fatalf("status = %s, want APPROVED", dto.Status)
	}
	if dto.LoanClosed {
		t.Fatalf("one installment should not close the loan")
	}

	// second review of the same payment is a conflict
	c, rec = s.newJSONContext(stdhttp.MethodPatch, "/admin/payments/"+submitted.PaymentID+"/review", mustJSON(map[string]any{
		"status": "APPROVED",
	}), admin)
	c.SetParamNames("payment_id")
	c.SetParamValues(submitted.PaymentID)
	if err := s.payH.Review(c); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("replay status = %d, want 409", rec.Code)
	}
}

func TestReviewPayment_FullSettlementClosesLoan(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)
	l := s.seedDisbursedLoan(t, p.UserID)
	submitted := submitPayment(t, s, l.LoanID, p.UserID, 102513.26)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/payments/"+submitted.PaymentID+"/review", mustJSON(map[string]any{
		"status": "APPROVED",
	}), id.NewID32())
	c.SetParamNames("payment_id")
	c.SetParamValues(submitted.PaymentID)
	if err := s.payH.Review(c); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var dto paymentUC.PaymentDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &dto)
	if !dto.LoanClosed {
		t.Fatalf("expected loan_closed=true, got %+v", dto)
	}
}

func TestReviewPayment_OverpaymentBadRequest(t *testing.T) {
	s := newTestServer(t)
	p := s.seedProfile(t, nil)
	l := s.seedDisbursedLoan(t, p.UserID)
	submitted := submitPayment(t, s, l.LoanID, p.UserID, 150000)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/payments/"+submitted.PaymentID+"/review", mustJSON(map[string]any{
		"status": "APPROVED",
	}), id.NewID32())
	c.SetParamNames("payment_id")
	c.SetParamValues(submitted.PaymentID)
	if err := s.payH.Review(c); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", rec.Code, rec.Body.String())
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Code != "OVERPAYMENT" {
		t.Fatalf("code = %q, want OVERPAYMENT", er.Code)
	}
}

func TestReviewPayment_BadDecision(t *testing.T) {
	s := newTestServer(t)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/payments/x/review", mustJSON(map[string]any{
		"status": "MAYBE",
	}), id.NewID32())
	c.SetParamNames("payment_id")
	c.SetParamValues("x")
	if err := s.payH.Review(c); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Status", "must be one of: APPROVED REJECTED") {
		t.Fatalf("missing oneof detail: %+v", er.Details)
	}
}

func TestReviewPayment_NotFound(t *testing.T) {
	s := newTestServer(t)

	c, rec := s.newJSONContext(stdhttp.MethodPatch, "/admin/payments/"+id.NewID32()+"/review", mustJSON(map[string]any{
		"status":           "REJECTED",
		"rejection_reason": "no matching wire received",
	}), id.NewID32())
	c.SetParamNames("payment_id")
	c.SetParamValues(id.NewID32())
	if err := s.payH.Review(c); err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
