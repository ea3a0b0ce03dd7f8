package entity

import (
	"time"
)

type Showtime struct {
	Base
	Title    string    `db:"title"`
	StartsAt time.Time `db:"starts_at"`
}
