package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"uniqueIndex:idx_barber_slot" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// Data local da barbearia ("2006-01-02") + horário ("15:04").
	// O índice único é a âncora de idempotência do motor: re-gerar uma
	// janela já materializada rejeita linha a linha, nunca duplica.
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_barber_slot" json:"date"`
	TimeSlot string `gorm:"size:5;not null;uniqueIndex:idx_barber_slot" json:"time_slot"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	// Referência à série geradora (não é vínculo de posse: a linha
	// sobrevive e pode ser alterada mesmo se a série mudar).
	SeriesID *uint `gorm:"index" json:"series_id"`

	// Horário bloqueado (pausa), não é atendimento de cliente.
	IsPause bool `gorm:"default:false" json:"is_pause"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
