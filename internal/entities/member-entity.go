package entities

import "time"

type Member struct {
	ID        uint64
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}
