package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

// User is the document stored in the users collection. Exactly one of
// KrishiBhavanID (customers) and KrishiBhavan (sellers) is set.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Phone          string             `json:"phone" bson:"phone,omitempty"`
	Address        string             `json:"address" bson:"address"`
	Pincode        string             `json:"pincode" bson:"pincode"`
	Password       string             `json:"-" bson:"password,omitempty"`
	Role           Role               `json:"role" bson:"role"`
	KrishiBhavanID string             `json:"krishiBhavanId,omitempty" bson:"krishiBhavanId,omitempty"`
	KrishiBhavan   string             `json:"krishiBhavan,omitempty" bson:"krishiBhavan,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PublicProfile is the reduced view returned by GET /user/:id.
type PublicProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
	}
}
