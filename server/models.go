package main

import (
	"time"

	"gorm.io/gorm"
)

// Game represents a game in the database. The board arrangement is not
// stored; it is rebuilt by replaying the moves.
type Game struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"type:text;uniqueIndex" json:"slug"`
	Size      int       `gorm:"not null;default:19" json:"size"`
	Komi      float64   `gorm:"not null;default:7.5" json:"komi"`
	Status    string    `gorm:"type:text;default:'active'" json:"status"`
	UserID    *int64    `gorm:"index" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Moves []Move `gorm:"foreignKey:GameID" json:"moves,omitempty"`
}

// Move represents a single move in a game. Vertex is empty for a pass.
type Move struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID    int64     `gorm:"index;not null" json:"game_id"`
	Number    int       `gorm:"not null" json:"number"`
	Player    string    `gorm:"type:varchar(8);not null" json:"player"`
	Vertex    string    `gorm:"type:varchar(4)" json:"vertex,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Game Game `gorm:"foreignKey:GameID" json:"-"`
}

// User represents a registered user.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(128);not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AutoMigrate runs the database migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Game{}, &Move{}, &User{})
}
