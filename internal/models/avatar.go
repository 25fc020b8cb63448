package models

import "time"

type Avatar struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
