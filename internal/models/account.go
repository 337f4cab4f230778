package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents account roles in the marketplace
type Role string

const (
	RoleClient   Role = "client"
	RoleShowroom Role = "showroom"
	RoleAdmin    Role = "admin"
)

// Account represents a registered client, showroom owner or admin.
type Account struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"password_hash" json:"-"`
	Role               Role               `bson:"role" json:"role"`
	OwnerName          string             `bson:"owner_name,omitempty" json:"ownerName,omitempty"`
	ShowroomName       string             `bson:"showroom_name,omitempty" json:"showroomName,omitempty"`
	CNIC               string             `bson:"cnic,omitempty" json:"cnic,omitempty"`
	ContactNumber      string             `bson:"contact_number,omitempty" json:"contactNumber,omitempty"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	Images             []string           `bson:"images,omitempty" json:"images,omitempty"`
	ResetPasswordToken string             `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExp   *time.Time         `bson:"reset_password_expires,omitempty" json:"-"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// AccountSummary is the owner/client view embedded into populated car and
// booking responses.
type AccountSummary struct {
	ID            primitive.ObjectID `json:"id"`
	OwnerName     string             `json:"ownerName,omitempty"`
	ShowroomName  string             `json:"showroomName,omitempty"`
	Address       string             `json:"address,omitempty"`
	Email         string             `json:"email,omitempty"`
	ContactNumber string             `json:"contactNumber,omitempty"`
}

// Summary strips an account down to the fields exposed in joins.
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:            a.ID,
		OwnerName:     a.OwnerName,
		ShowroomName:  a.ShowroomName,
		Address:       a.Address,
		Email:         a.Email,
		ContactNumber: a.ContactNumber,
	}
}

// DisplayName returns the name shown after login: the showroom name for
// showroom accounts, the owner name otherwise.
func (a *Account) DisplayName() string {
	if a.Role == RoleShowroom {
		return a.ShowroomName
	}
	return a.OwnerName
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleClient, RoleShowroom, RoleAdmin:
		return true
	default:
		return false
	}
}

// Showroom moderation states.
const (
	ShowroomActive = "active"
	ShowroomBanned = "banned"
)

// ShowroomStatus tracks moderation of a showroom account. One record exists
// per showroom-role account, created at signup with approved=0.
type ShowroomStatus struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShowroomID primitive.ObjectID `bson:"showroom_id" json:"showroomId"`
	Status     string             `bson:"status" json:"status"`
	Approved   int                `bson:"approved" json:"approved"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Claims carries the identity decoded from a session token.
type Claims struct {
	AccountID string `json:"id"`
	Role      Role   `json:"role"`
	Exp       int64  `json:"exp"`
}
