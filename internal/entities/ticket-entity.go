package entities

import "time"

type Ticket struct {
	ID          uint64
	Type        string
	Description *string
	Status      string
	Priority    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TicketFilter struct {
	Status         string
	Priority       string
	AssignedTo     string // NIC исполнителя
	RaisedByMember *uint64
	RaisedByStaff  string
}

// TicketRaisedBy - кто открыл тикет. Заполнено ровно одно из MemberID / StaffID.
type TicketRaisedBy struct {
	TicketID uint64
	MemberID *uint64
	StaffID  *string
	Version  uint64
}

// FirstAssignmentVersion - версия только что созданного назначения.
// Версия 0 зарезервирована за "тикет не назначен".
const FirstAssignmentVersion uint64 = 1

// TicketAssignedTo - текущий исполнитель. Строки нет, пока тикет не назначен.
type TicketAssignedTo struct {
	TicketID uint64
	StaffID  string
	Version  uint64
}
