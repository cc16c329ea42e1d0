package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Age          *int      `json:"age,omitempty"`
	Profession   *string   `json:"profession,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
