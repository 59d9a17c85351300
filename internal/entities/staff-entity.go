package entities

import "time"

// Staff - сотрудник зала, идентифицируется по NIC.
type Staff struct {
	NIC          string
	Name         string
	Role         string
	Phone        *string
	StartDate    *time.Time
	Shift        *string
	PasswordHash string
}
