package series

import "strings"

// ===============================
// Status / convenções
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Rótulo convencionado para reservas de pausa ("Pausa", "pausa almoço"...).
// Séries novas carregam o flag is_pause explícito; o padrão só existe para
// reclassificar dados antigos no backfill.
const DefaultPauseLabel = "pausa"

func IsPauseLabel(customerName string) bool {
	return strings.Contains(strings.ToLower(customerName), DefaultPauseLabel)
}
