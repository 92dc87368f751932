package models

import "time"

// Lottery is a named draw event sold over a date window.
type Lottery struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" gorm:"uniqueIndex;type:varchar(80);not null" validate:"required,max=80"`
	PricePerTicket float64   `json:"price_per_ticket" gorm:"type:decimal(10,2);not null" validate:"required,gt=0"`
	StartDate      time.Time `json:"start_date" gorm:"not null"`
	EndDate        time.Time `json:"end_date" gorm:"not null"`
	Description    string    `json:"description" gorm:"type:varchar(500);not null" validate:"omitempty,max=500"`
	CreatedAt      time.Time `json:"created_at"`
}

// ActiveOn reports whether the draw is open for purchase on the day of t.
// The comparison is day-resolution: the end date itself is still open.
func (l *Lottery) ActiveOn(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}

// LotteryRevenue is one row of the per-lottery sales aggregation:
// tickets sold times the price per ticket. Lotteries with no tickets
// sold do not produce a row.
type LotteryRevenue struct {
	LotteryID    uint    `json:"lotto_id"`
	Name         string  `json:"name"`
	TicketsSold  int64   `json:"tickets_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}
