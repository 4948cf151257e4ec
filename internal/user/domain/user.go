package domain

import "time"

type ID string

type User struct {
	ID           ID
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
