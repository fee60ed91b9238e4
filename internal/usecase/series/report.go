package series

// ======================================================
// Relatórios de execução
// ======================================================

// MaterializeResult são os contadores de um lote de uma série.
type MaterializeResult struct {
	Created          int `json:"created"`
	Skipped          int `json:"skipped"`
	ExceptionSkipped int `json:"exceptionSkipped"`
}

type SeriesError struct {
	SeriesID uint   `json:"seriesId"`
	Error    string `json:"error"`
}

type SeriesDetail struct {
	SeriesID         uint   `json:"seriesId"`
	CustomerName     string `json:"customerName"`
	Created          int    `json:"created"`
	Skipped          int    `json:"skipped"`
	ExceptionSkipped int    `json:"exceptionSkipped"`
	NewHorizon       string `json:"newHorizon,omitempty"`
}

// ExtendReport é a resposta agregada de uma execução completa (cron
// semanal ou backfill). Sempre devolvida inteira, mesmo com falhas
// parciais: só auth e a listagem inicial abortam a requisição.
type ExtendReport struct {
	RunID string `json:"runId"`

	SeriesProcessed       int `json:"seriesProcessed"`
	TotalCreated          int `json:"totalCreated"`
	TotalSkipped          int `json:"totalSkipped"`
	TotalExceptionSkipped int `json:"totalExceptionSkipped"`

	Errors  []SeriesError  `json:"errors,omitempty"`
	Details []SeriesDetail `json:"details,omitempty"`

	// Preenchido só pelo backfill (reclassificação única de pausas).
	PausesReclassified int64 `json:"pausesReclassified,omitempty"`
}

func (r *ExtendReport) add(res MaterializeResult) {
	r.TotalCreated += res.Created
	r.TotalSkipped += res.Skipped
	r.TotalExceptionSkipped += res.ExceptionSkipped
}
