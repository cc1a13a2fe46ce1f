package application

import "github.com/oksasatya/user-account-service/internal/domain/entity"

// PublicUser is the user projection returned by list, get and login.
// SessionActive is always true; no session state backs it.
type PublicUser struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	SessionActive bool   `json:"session_active"`
}

// UserPayload is the projection returned by create and update.
type UserPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func toPublicUser(u *entity.User) PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Phone:         u.Phone,
		Email:         u.Email,
		Address:       u.Address,
		SessionActive: true,
	}
}

func toUserPayload(u *entity.User) UserPayload {
	return UserPayload{Name: u.Name, Phone: u.Phone, Email: u.Email, Address: u.Address}
}
