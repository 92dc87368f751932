package models

import "time"

// Ticket is one purchased entry: five numbers plus the payment details
// submitted alongside them. Rows are immutable after purchase.
type Ticket struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Reference      string    `json:"reference" gorm:"type:varchar(36);not null"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	LotteryID      uint      `json:"lotto_id" gorm:"not null;index"`
	Number1        int       `json:"number1" gorm:"not null"`
	Number2        int       `json:"number2" gorm:"not null"`
	Number3        int       `json:"number3" gorm:"not null"`
	Number4        int       `json:"number4" gorm:"not null"`
	Number5        int       `json:"number5" gorm:"not null"`
	CardNumber     string    `json:"card_number" gorm:"type:varchar(16);not null"`
	ExpirationDate string    `json:"expiration_date" gorm:"type:varchar(5);not null"`
	BillingAddress string    `json:"billing_address" gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time `json:"created_at"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Lottery *Lottery `json:"lottery,omitempty" gorm:"foreignKey:LotteryID"`
}

// Numbers returns the ticket's five numbers in submission order.
func (t *Ticket) Numbers() [5]int {
	return [5]int{t.Number1, t.Number2, t.Number3, t.Number4, t.Number5}
}
