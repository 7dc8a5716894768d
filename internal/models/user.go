package models

import (
	"time"
)

type User struct {
	ID                 string
	Name               string
	RegistrationNumber string // Student ID, unique
	Department         string
	Email              string
	PasswordHash       string
	ContactNumber      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	LastLogin          *time.Time // nil until the first completed login
}
