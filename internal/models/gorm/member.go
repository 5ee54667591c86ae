package gorm

import (
	"time"

	"junta-vecinos/backend/internal/constants"
)

// Member is a vecino registered with the junta. Board (directiva) membership
// lives on the same row: the term date range is authoritative and
// IsActiveBoardMember is a cached projection recomputed on write.
type Member struct {
	ID                  uint                `gorm:"column:id;primaryKey"`
	FirstNames          string              `gorm:"column:first_names;size:150;not null"`
	LastNames           string              `gorm:"column:last_names;size:150;not null"`
	NationalID          *string             `gorm:"column:national_id;size:12;uniqueIndex"`
	Email               string              `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash        string              `gorm:"column:password_hash;size:255;not null"`
	Address             *string             `gorm:"column:address;size:255"`
	HouseNumber         *string             `gorm:"column:house_number;size:50"`
	Phone               *string             `gorm:"column:phone;size:20"`
	JuntaRole           constants.JuntaRole `gorm:"column:junta_role;size:50;not null;default:vecino_registrado;index"`
	IsActiveBoardMember bool                `gorm:"column:is_active_board_member;not null;default:false;index"`
	BoardTitle          *string             `gorm:"column:board_title;size:100"`
	BoardTermStart      *time.Time          `gorm:"column:board_term_start"`
	BoardTermEnd        *time.Time          `gorm:"column:board_term_end"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "vecinos"
}

// BoardActiveAt evaluates directiva membership against the term date range,
// which is the source of truth for the cached flag.
func (m *Member) BoardActiveAt(t time.Time) bool {
	if m.BoardTermStart == nil || m.BoardTermStart.After(t) {
		return false
	}
	if m.BoardTermEnd != nil && m.BoardTermEnd.Before(t) {
		return false
	}
	return true
}

// RecomputeBoardFlag refreshes the cached projection. A finished term also
// clears the board fields, mirroring an explicit deactivation.
func (m *Member) RecomputeBoardFlag(now time.Time) {
	m.IsActiveBoardMember = m.BoardActiveAt(now)
	if m.BoardTermEnd != nil && m.BoardTermEnd.Before(now) {
		m.BoardTitle = nil
		m.BoardTermStart = nil
		m.BoardTermEnd = nil
	}
}

// FullName joins the name parts the way listings display them.
func (m *Member) FullName() string {
	return m.FirstNames + " " + m.LastNames
}
