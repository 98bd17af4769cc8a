package model

import "time"

type User struct {
	ID           int       `json:"id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Milestone    string    `json:"milestone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
