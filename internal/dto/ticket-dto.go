package dto

import "github.com/aarondl/null/v8"

// CreateTicketDTO: ровно одно из memberId / staffId обязательно.
type CreateTicketDTO struct {
	Type        string      `json:"type" validate:"required,max=255"`
	Description null.String `json:"description"`
	Priority    string      `json:"priority"`
	MemberID    null.Int64  `json:"memberId" validate:"omitempty,gte=1"`
	StaffID     *string     `json:"staffId" validate:"omitempty,staff_nic"`
}

const (
	RaisedByMember = "MEMBER"
	RaisedByStaff  = "STAFF"
)

type TicketResponseDTO struct {
	ID             uint64      `json:"id"`
	Type           string      `json:"type"`
	Description    null.String `json:"description"`
	Status         string      `json:"status"`
	Priority       string      `json:"priority"`
	CreatedAt      string      `json:"createdAt"`
	UpdatedAt      string      `json:"updatedAt"`
	AssignedToID   *string     `json:"assignedToId"`
	AssignedToName *string     `json:"assignedToName"`
	// версия назначения, её передают в PUT /assign?version=
	AssignmentVersion *uint64 `json:"assignmentVersion,omitempty"`
	RaisedByType      string  `json:"raisedByType,omitempty"`
	RaisedByID        *string `json:"raisedById"`
	RaisedByName      *string `json:"raisedByName"`
}

type CountDTO struct {
	Count uint64 `json:"count"`
}
