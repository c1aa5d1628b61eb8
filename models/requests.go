package models

// RegisterRequest carries validate tags only; binding stays lenient so every
// field error can be reported at once.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,looseemail"`
	Phone          string `json:"phone" validate:"omitempty,digits=10"`
	Password       string `json:"password" validate:"required,min=8,maxbytes=72"`
	Pincode        string `json:"pincode" validate:"digits=6"`
	Address        string `json:"address" validate:"required"`
	Role           Role   `json:"role" validate:"oneof=customer seller"`
	KrishiBhavanID string `json:"krishiBhavanId" validate:"required_if=Role customer"`
	KrishiBhavan   string `json:"krishiBhavan" validate:"required_if=Role seller"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest treats empty strings as "not provided".
type UpdateProfileRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,looseemail"`
	Phone   string `json:"phone" validate:"omitempty,digits=10"`
	Address string `json:"address"`
	Pincode string `json:"pincode" validate:"omitempty,digits=6"`
}
