package models

import "time"

// Exceção por data de uma série: a data está "resolvida" e o motor nunca
// deve (re)materializar uma ocorrência para ela. Registro explícito por
// (série, data): inferir pela ausência da linha não distingue "ainda não
// gerado" de "removido de propósito".
type SeriesException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SeriesID uint   `gorm:"not null;uniqueIndex:idx_series_date" json:"series_id"`
	Series   Series `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_series_date" json:"date"`

	// cancelled | rescheduled | deleted
	Reason string `gorm:"size:30;default:'cancelled'" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
