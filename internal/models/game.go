package models

import "time"

type Game struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Platform    string    `gorm:"type:varchar(100)" json:"platform"`
	Genre       string    `gorm:"type:varchar(100)" json:"genre"`
	ReleaseYear int       `json:"release_year"`
	CoverURL    string    `gorm:"type:varchar(512)" json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
