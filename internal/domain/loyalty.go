package domain

import "time"

// Bonus transaction types
const (
	BonusEarned  = "earned"
	BonusSpent   = "spent"
	BonusExpired = "expired"
	BonusManual  = "manual"
)

// BonusTransaction is one entry in a user's bonus point ledger. The balance
// is always the sum of points, never stored.
type BonusTransaction struct {
	ID              int64     `json:"id,string" form:"id"`
	UserId          int64     `gorm:"index" json:"user_id,string" form:"user_id"`
	OrderId         int64     `gorm:"default:0" json:"order_id,string" form:"order_id"`
	Points          int       `json:"points" form:"points"`
	TransactionType string    `gorm:"size:20" json:"transaction_type" form:"transaction_type"`
	Description     string    `json:"description" form:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName Specify table name
func (BonusTransaction) TableName() string {
	return "bonus_transaction"
}
