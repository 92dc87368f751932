package models

import "time"

// Winner is an admin-posted draw result for a lottery. Rows only
// accumulate; the row with the highest id is the authoritative draw.
type Winner struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	LotteryID uint      `json:"lotto_id" gorm:"not null;index"`
	Number1   int       `json:"number1" gorm:"not null"`
	Number2   int       `json:"number2" gorm:"not null"`
	Number3   int       `json:"number3" gorm:"not null"`
	Number4   int       `json:"number4" gorm:"not null"`
	Number5   int       `json:"number5" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Numbers returns the winning numbers in posted order.
func (w *Winner) Numbers() [5]int {
	return [5]int{w.Number1, w.Number2, w.Number3, w.Number4, w.Number5}
}

// Matches reports whether the ticket equals the draw position by
// position. Set equality is not enough: (25,19,12,7,3) does not match
// a draw of (3,7,12,19,25).
func (w *Winner) Matches(t *Ticket) bool {
	return w.Numbers() == t.Numbers()
}
