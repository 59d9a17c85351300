package dto

type StaffLoginDTO struct {
	NIC      string `json:"nic" validate:"required,staff_nic"`
	Password string `json:"password" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken string `json:"access_token"`
	StaffID     string `json:"staff_id"`
	Role        string `json:"role"`
	ExpiresIn   int64  `json:"expires_in"`
}
