package service

import "reda_kids_backend/internal/model"

// Actor is the authenticated user a request acts for.
type Actor struct {
	UserID uint
	Role   model.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}
