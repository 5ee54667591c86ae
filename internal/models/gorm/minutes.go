package gorm

import (
	"time"

	"junta-vecinos/backend/internal/constants"
)

// Minutes is the acta of an asamblea: exactly one per assembly, enforced by
// the unique index on assembly_id. Content becomes immutable once approved.
type Minutes struct {
	ID         uint                    `gorm:"column:id;primaryKey"`
	Content    string                  `gorm:"column:content;type:text;not null"`
	Status     constants.MinutesStatus `gorm:"column:status;size:50;not null;default:borrador;index"`
	ApprovedAt *time.Time              `gorm:"column:approved_at"`
	AssemblyID uint                    `gorm:"column:assembly_id;not null;uniqueIndex"`
	AuthorID   *uint                   `gorm:"column:author_id"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Assembly *Assembly `gorm:"foreignKey:AssemblyID;constraint:OnDelete:CASCADE"`
	Author   *Member   `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for GORM
func (Minutes) TableName() string {
	return "actas_asambleas"
}
