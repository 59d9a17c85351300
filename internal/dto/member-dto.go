package dto

import "github.com/aarondl/null/v8"

type CreateMemberDTO struct {
	Name  string      `json:"name" validate:"required,max=255"`
	Email null.String `json:"email" validate:"omitempty,email"`
	Phone null.String `json:"phone" validate:"omitempty,phone"`
}

type MemberDTO struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Email     null.String `json:"email"`
	Phone     null.String `json:"phone"`
	CreatedAt string      `json:"createdAt"`
}
