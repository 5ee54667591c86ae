package gorm

import (
	"time"

	"junta-vecinos/backend/internal/constants"
)

// Assembly is a scheduled meeting of the junta. The organizer must be an
// active directiva member at creation time; the FK is RESTRICT so an
// organizer cannot be deleted while their asambleas remain.
type Assembly struct {
	ID          uint                     `gorm:"column:id;primaryKey"`
	Title       string                   `gorm:"column:title;size:255;not null"`
	Agenda      *string                  `gorm:"column:agenda;type:text"`
	ScheduledAt time.Time                `gorm:"column:scheduled_at;not null;index"`
	Location    *string                  `gorm:"column:location;size:255"`
	Status      constants.AssemblyStatus `gorm:"column:status;size:50;not null;default:planificada;index"`
	OrganizerID uint                     `gorm:"column:organizer_id;not null"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Organizer *Member  `gorm:"foreignKey:OrganizerID;constraint:OnDelete:RESTRICT"`
	Minutes   *Minutes `gorm:"foreignKey:AssemblyID"`
}

// TableName specifies the table name for GORM
func (Assembly) TableName() string {
	return "asambleas"
}
