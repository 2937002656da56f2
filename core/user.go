package core

import (
	"github.com/google/uuid"
)

// User is the minimal identity the borrowing engine needs about a borrower.
// Authentication and profile management are owned by an external collaborator.
type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
}

// FullName returns first and last name joined for display in notifications.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
