package loan

import "cupo-backend/pkg/apperr"

var (
	ErrNotFound  = apperr.New(apperr.KindNotFound, "NOT_FOUND", "loan not found")
	ErrForbidden = apperr.New(apperr.KindPolicy, "FORBIDDEN", "loan does not belong to this user")

	// State machine guards.
	ErrInvalidState       = apperr.New(apperr.KindState, "INVALID_STATE", "operation not allowed in current loan status")
	ErrAlreadyDisbursed   = apperr.New(apperr.KindState, "ALREADY_DISBURSED", "loan was already disbursed")
	ErrInstallmentsExist  = apperr.New(apperr.KindState, "INSTALLMENTS_ALREADY_EXIST", "installment schedule already exists for this loan")
	ErrNoVerifiedAccount  = apperr.New(apperr.KindState, "NO_VERIFIED_DISBURSEMENT_ACCOUNT", "no verified disbursement account on file")
	ErrNoAccount          = apperr.New(apperr.KindState, "NO_DISBURSEMENT_ACCOUNT", "no disbursement account registered for this loan")
	ErrActiveLoanExists   = apperr.New(apperr.KindState, "ACTIVE_LOAN_EXISTS", "user already has an active loan")
	ErrAccountAfterPayout = apperr.New(apperr.KindState, "ALREADY_DISBURSED", "disbursement account is frozen after payout")

	// Eligibility policy (consumed from the credit profile collaborator).
	ErrSuspended          = apperr.New(apperr.KindPolicy, "SUSPENDED", "account is suspended")
	ErrKYCNotApproved     = apperr.New(apperr.KindPolicy, "KYC_NOT_APPROVED", "KYC is not approved")
	ErrTermNotAllowed     = apperr.New(apperr.KindPolicy, "TERM_NOT_ALLOWED", "risk profile only allows a shorter term")
	ErrRiskReviewRequired = apperr.New(apperr.KindPolicy, "RISK_REVIEW_REQUIRED", "risk profile requires manual review before applying")
	ErrLimitExceeded      = apperr.New(apperr.KindPolicy, "LIMIT_EXCEEDED", "requested principal exceeds current credit limit")
)
