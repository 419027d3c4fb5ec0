package models

import "time"

const (
	RolePlayer   = "usuario"
	RoleEducator = "educador"
)

// Person is the identity row shared by players and educators.
// Nickname is the natural key used across the whole schema.
type Person struct {
	Nickname  string    `gorm:"primaryKey" json:"nickname"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null;default:usuario" json:"tipo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func ValidRole(role string) bool {
	return role == RolePlayer || role == RoleEducator
}

// PlayerProfile carries game progression for persons with role "usuario".
// XP, Level and Ranking are always written together so they never drift
// apart.
type PlayerProfile struct {
	Nickname     string    `gorm:"primaryKey" json:"nickname"`
	Ranking      string    `gorm:"not null;default:Iniciante" json:"ranking"`
	CardCount    int       `gorm:"not null;default:0" json:"qtdcartas"`
	XP           int64     `gorm:"not null;default:0" json:"xp"`
	Level        int       `gorm:"not null;default:1" json:"nivel"`
	ProfilePhoto *string   `json:"fotoperfil,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Educator extends a Person with role "educador". Educators own missions
// and author cards.
type Educator struct {
	Nickname  string    `gorm:"primaryKey" json:"nickname"`
	Title     string    `json:"titulo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
