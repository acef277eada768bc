package account

import (
	"time"
)

type AccountType string

const (
	TypeSavings  AccountType = "SAVINGS"
	TypeChecking AccountType = "CHECKING"
)

// DisbursementAccount is the payout destination for a loan. At most one per
// loan; any edit resets verification.
type DisbursementAccount struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	AccountID string `gorm:"column:account_id;type:char(32);not null;uniqueIndex:ux_disb_accounts_account_id" json:"account_id"`
	LoanID    uint64 `gorm:"column:loan_id;not null;uniqueIndex:ux_disb_accounts_loan" json:"-"`
	UserID    string `gorm:"column:user_id;type:char(32);not null" json:"user_id"`

	BankName              string      `gorm:"column:bank_name;type:varchar(120);not null" json:"bank_name"`
	AccountType           AccountType `gorm:"column:account_type;type:enum('SAVINGS','CHECKING');not null" json:"account_type"`
	AccountNumber         string      `gorm:"column:account_number;type:varchar(50);not null" json:"account_number"`
	AccountHolderName     string      `gorm:"column:account_holder_name;type:varchar(120);not null" json:"account_holder_name"`
	AccountHolderDocument string      `gorm:"column:account_holder_document;type:varchar(30);not null" json:"account_holder_document"`

	IsVerified bool `gorm:"column:is_verified;not null;default:false" json:"is_verified"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DisbursementAccount) TableName() string { return "loan_disbursement_accounts" }
