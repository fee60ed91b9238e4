package models

import "time"

// Série: regra de reserva semanal recorrente. O cliente "reserva" um
// horário fixo (ex: toda segunda 10:00) e o motor materializa as
// ocorrências futuras como appointments reais.
type Series struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	// Datas no calendário local da barbearia ("2006-01-02").
	// StartDate ancora o dia da semana e é a primeira ocorrência possível.
	StartDate string  `gorm:"size:10;not null" json:"start_date"`
	EndDate   *string `gorm:"size:10" json:"end_date"` // nil = sem fim

	TimeSlot string `gorm:"size:5;not null" json:"time_slot"` // "15:04"

	// LastGeneratedDate marca até onde o horizonte já foi materializado.
	// Avança de forma monotônica a cada extensão.
	LastGeneratedDate string `gorm:"size:10" json:"last_generated_date"`

	// Série de pausa (horário bloqueado, não é cliente real).
	IsPause bool `gorm:"default:false" json:"is_pause"`

	Active bool   `gorm:"default:true" json:"active"`
	Notes  string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
