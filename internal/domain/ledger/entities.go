package ledger

import (
	"time"
)

type EntryType string

const (
	TypeDisbursement EntryType = "DISBURSEMENT"
	TypePayment      EntryType = "PAYMENT"
)

// Entry is an immutable record of money movement, used for reconciliation.
// Balances are derived from installments, never from here.
type Entry struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	EntryID   string    `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_transactions_entry_id" json:"entry_id"`
	LoanID    uint64    `gorm:"column:loan_id;not null;index:idx_transactions_loan" json:"-"`
	Type      EntryType `gorm:"column:type;type:enum('DISBURSEMENT','PAYMENT');not null" json:"type"`
	AmountCOP float64   `gorm:"column:amount_cop;type:decimal(18,2);not null" json:"amount_cop"`
	Reference string    `gorm:"column:reference;type:text" json:"reference,omitempty"`
	CreatedBy string    `gorm:"column:created_by;type:char(32);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "transactions" }
