// Package testdb opens an in-memory sqlite database with an sqlite-safe
// mirror of the MySQL schema (no ENUM columns). Tests migrate these shadow
// models, then run the production repositories against the same tables.
package testdb

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type loanSQLite struct {
	ID                   uint64     `gorm:"primaryKey;column:id"`
	LoanID               string     `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id"`
	UserID               string     `gorm:"column:user_id;size:32;index:idx_loans_user_status"`
	PrincipalCOP         float64    `gorm:"column:principal_cop"`
	TermMonths           int        `gorm:"column:term_months"`
	InterestEAUsed       float64    `gorm:"column:interest_ea_used"`
	MonthlyRateEM        float64    `gorm:"column:monthly_rate_em"`
	InstallmentAmountCOP float64    `gorm:"column:installment_amount_cop"`
	TotalPayableCOP      float64    `gorm:"column:total_payable_cop"`
	Status               string     `gorm:"column:status;type:text;index:idx_loans_user_status"` // no enum
	RejectionReason      string     `gorm:"column:rejection_reason;type:text"`
	ApprovedBy           string     `gorm:"column:approved_by;size:32"`
	ApprovedAt           *time.Time `gorm:"column:approved_at"`
	DisbursedAt          *time.Time `gorm:"column:disbursed_at"`
	ClosedAt             *time.Time `gorm:"column:closed_at"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type installmentSQLite struct {
	ID            uint64     `gorm:"primaryKey;column:id"`
	InstallmentID string     `gorm:"column:installment_id;size:32;uniqueIndex:ux_installments_installment_id"`
	LoanID        uint64     `gorm:"column:loan_id;uniqueIndex:ux_installments_loan_number,priority:1"`
	Number        int        `gorm:"column:installment_number;uniqueIndex:ux_installments_loan_number,priority:2"`
	DueDate       time.Time  `gorm:"column:due_date"`
	AmountDueCOP  float64    `gorm:"column:amount_due_cop"`
	AmountPaidCOP float64    `gorm:"column:amount_paid_cop;default:0"`
	Status        string     `gorm:"column:status;type:text"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
	DaysLate      int        `gorm:"column:days_late;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (installmentSQLite) TableName() string { return "loan_installments" }

type paymentSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id"`
	PaymentID       string     `gorm:"column:payment_id;size:32;uniqueIndex:ux_payments_payment_id"`
	LoanID          uint64     `gorm:"column:loan_id;index:idx_payments_loan"`
	InstallmentID   *uint64    `gorm:"column:installment_id"`
	AmountCOP       float64    `gorm:"column:amount_cop"`
	ProofRef        string     `gorm:"column:proof_ref;type:text"`
	Status          string     `gorm:"column:status;type:text"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text"`
	ReviewedBy      string     `gorm:"column:reviewed_by;size:32"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	CreatedBy       string     `gorm:"column:created_by;size:32"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (paymentSQLite) TableName() string { return "loan_payments" }

type ledgerSQLite struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	EntryID   string    `gorm:"column:entry_id;size:32;uniqueIndex:ux_transactions_entry_id"`
	LoanID    uint64    `gorm:"column:loan_id;index:idx_transactions_loan"`
	Type      string    `gorm:"column:type;type:text"`
	AmountCOP float64   `gorm:"column:amount_cop"`
	Reference string    `gorm:"column:reference;type:text"`
	CreatedBy string    `gorm:"column:created_by;size:32"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ledgerSQLite) TableName() string { return "transactions" }

type creditProfileSQLite struct {
	ID               uint64     `gorm:"primaryKey;column:id"`
	UserID           string     `gorm:"column:user_id;size:32;uniqueIndex:ux_credit_profiles_user"`
	KYCStatus        string     `gorm:"column:kyc_status;type:text"`
	RiskTier         string     `gorm:"column:risk_tier;type:text"`
	Score            int        `gorm:"column:score;default:50"`
	CurrentLimitCOP  float64    `gorm:"column:current_limit_cop"`
	MaxLimitCOP      float64    `gorm:"column:max_limit_cop"`
	IsSuspended      bool       `gorm:"column:is_suspended;default:false"`
	SuspensionReason string     `gorm:"column:suspension_reason;type:text"`
	LoansRepaid      int        `gorm:"column:loans_repaid;default:0"`
	OnTimeLoans      int        `gorm:"column:on_time_loans;default:0"`
	LateLoans        int        `gorm:"column:late_loans;default:0"`
	LastRepaidAt     *time.Time `gorm:"column:last_repaid_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (creditProfileSQLite) TableName() string { return "credit_profiles" }

type accountSQLite struct {
	ID                    uint64    `gorm:"primaryKey;column:id"`
	AccountID             string    `gorm:"column:account_id;size:32;uniqueIndex:ux_disb_accounts_account_id"`
	LoanID                uint64    `gorm:"column:loan_id;uniqueIndex:ux_disb_accounts_loan"`
	UserID                string    `gorm:"column:user_id;size:32"`
	BankName              string    `gorm:"column:bank_name;size:120"`
	AccountType           string    `gorm:"column:account_type;type:text"`
	AccountNumber         string    `gorm:"column:account_number;size:50"`
	AccountHolderName     string    `gorm:"column:account_holder_name;size:120"`
	AccountHolderDocument string    `gorm:"column:account_holder_document;size:30"`
	IsVerified            bool      `gorm:"column:is_verified;default:false"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (accountSQLite) TableName() string { return "loan_disbursement_accounts" }

type auditSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ActorID    string    `gorm:"column:actor_id;size:32"`
	Action     string    `gorm:"column:action;size:64;index:idx_audit_action"`
	EntityType string    `gorm:"column:entity_type;size:64"`
	EntityID   string    `gorm:"column:entity_id;size:32;index:idx_audit_entity"`
	Before     []byte    `gorm:"column:before"`
	After      []byte    `gorm:"column:after"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (auditSQLite) TableName() string { return "audit_logs" }

// Open creates a fresh in-memory database with every table migrated.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&loanSQLite{},
		&installmentSQLite{},
		&paymentSQLite{},
		&ledgerSQLite{},
		&creditProfileSQLite{},
		&accountSQLite{},
		&auditSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
