package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-series-engine/internal/audit"
	domain "github.com/BruksfildServices01/barber-series-engine/internal/domain/series"
	"github.com/BruksfildServices01/barber-series-engine/internal/httperr"
	"github.com/BruksfildServices01/barber-series-engine/internal/httpresp"
	"github.com/BruksfildServices01/barber-series-engine/internal/middleware"
	"github.com/BruksfildServices01/barber-series-engine/internal/models"
	"github.com/BruksfildServices01/barber-series-engine/internal/timezone"
)

// ======================================================
// HANDLER: administração de séries
// ======================================================
//
// CRUD consumido pelo app administrativo. A geração em si mora nos
// usecases; aqui é só o ciclo de vida da regra e das exceções.

type SeriesHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewSeriesHandler(db *gorm.DB, auditDisp *audit.Dispatcher, loc *time.Location) *SeriesHandler {
	return &SeriesHandler{db: db, audit: auditDisp, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSeriesRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date"`
	TimeSlot      string `json:"time_slot" binding:"required"`
	IsPause       bool   `json:"is_pause"`
	Notes         string `json:"notes"`
}

type UpdateSeriesRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	EndDate       *string `json:"end_date"`
	Notes         *string `json:"notes"`
	Active        *bool   `json:"active"`
}

type CreateExceptionRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// ======================================================
// CRUD
// ======================================================

func (h *SeriesHandler) List(c *gin.Context) {
	q := h.db.Order("id ASC")

	if v := c.Query("barber_id"); v != "" {
		if barberID, err := strconv.Atoi(v); err == nil {
			q = q.Where("barber_id = ?", barberID)
		}
	}
	if c.Query("active") == "true" {
		today := timezone.TodayLocal(h.loc)
		q = q.Where("active = ? AND (end_date IS NULL OR end_date = '' OR end_date > ?)", true, today)
	}

	var list []models.Series
	if err := q.Find(&list).Error; err != nil {
		httperr.Internal(c, "list_series_error", "Erro ao listar séries.")
		return
	}

	httpresp.List(c, list)
}

func (h *SeriesHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if _, err := timezone.ParseDateNoon(req.StartDate, h.loc); err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
		return
	}
	if req.EndDate != "" {
		if _, err := timezone.ParseDateNoon(req.EndDate, h.loc); err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
			return
		}
		if req.EndDate < req.StartDate {
			httperr.BadRequest(c, "end_before_start", "Data final antes da inicial.")
			return
		}
	}
	if _, err := time.Parse("15:04", req.TimeSlot); err != nil {
		httperr.BadRequest(c, "invalid_time_slot", "Horário inválido.")
		return
	}

	s := models.Series{
		BarberID:      req.BarberID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StartDate:     req.StartDate,
		TimeSlot:      req.TimeSlot,
		IsPause:       req.IsPause || domain.IsPauseLabel(req.CustomerName),
		Active:        true,
		Notes:         req.Notes,
	}
	if req.EndDate != "" {
		s.EndDate = &req.EndDate
	}

	if err := h.db.Create(&s).Error; err != nil {
		httperr.Internal(c, "create_series_error", "Erro ao criar série.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "series_created",
		Entity:   "series",
		EntityID: &s.ID,
	})

	httpresp.Created(c, s)
}

func (h *SeriesHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	s, ok := h.findSeries(c)
	if !ok {
		return
	}

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.CustomerName != nil {
		s.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		s.CustomerPhone = *req.CustomerPhone
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	if req.Active != nil {
		s.Active = *req.Active
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			s.EndDate = nil
		} else {
			if _, err := timezone.ParseDateNoon(*req.EndDate, h.loc); err != nil {
				httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
				return
			}
			s.EndDate = req.EndDate
		}
	}

	if err := h.db.Save(s).Error; err != nil {
		httperr.Internal(c, "update_series_error", "Erro ao atualizar série.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "series_updated",
		Entity:   "series",
		EntityID: &s.ID,
	})

	httpresp.OK(c, s)
}

// Delete encerra a série: desativa a regra sem tocar nas ocorrências já
// materializadas (o motor nunca apaga appointments).
func (h *SeriesHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	s, ok := h.findSeries(c)
	if !ok {
		return
	}

	today := timezone.TodayLocal(h.loc)
	s.Active = false
	if s.EndDate == nil || *s.EndDate > today {
		s.EndDate = &today
	}

	if err := h.db.Save(s).Error; err != nil {
		httperr.Internal(c, "delete_series_error", "Erro ao encerrar série.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "series_deactivated",
		Entity:   "series",
		EntityID: &s.ID,
	})

	httpresp.OK(c, s)
}

// ======================================================
// EXCEPTIONS
// ======================================================

// CreateException marca uma data da série como resolvida: cancela a
// ocorrência materializada (se existir) e registra a exceção para que a
// geração nunca recrie a linha.
func (h *SeriesHandler) CreateException(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	s, ok := h.findSeries(c)
	if !ok {
		return
	}

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if _, err := timezone.ParseDateNoon(req.Date, h.loc); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "cancelled"
	}

	exc := models.SeriesException{
		SeriesID: s.ID,
		Date:     req.Date,
		Reason:   reason,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Repetir a mesma exceção não é erro.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&exc).Error; err != nil {
			return err
		}

		now := time.Now().In(h.loc)
		return tx.Model(&models.Appointment{}).
			Where("series_id = ? AND date = ? AND status = ?", s.ID, req.Date, string(domain.StatusScheduled)).
			Updates(map[string]any{
				"status":       string(domain.StatusCancelled),
				"cancelled_at": now,
			}).Error
	})
	if err != nil {
		httperr.Internal(c, "create_exception_error", "Erro ao registrar exceção.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "series_exception_created",
		Entity:   "series",
		EntityID: &s.ID,
		Metadata: gin.H{"date": req.Date, "reason": reason},
	})

	httpresp.Created(c, exc)
}

// ======================================================
// APPOINTMENTS DA SÉRIE
// ======================================================

func (h *SeriesHandler) ListAppointments(c *gin.Context) {
	s, ok := h.findSeries(c)
	if !ok {
		return
	}

	var apps []models.Appointment
	if err := h.db.
		Where("series_id = ?", s.ID).
		Order("date ASC").
		Find(&apps).Error; err != nil {
		httperr.Internal(c, "list_appointments_error", "Erro ao listar ocorrências.")
		return
	}

	httpresp.List(c, apps)
}

// --------------------------------------------------

func (h *SeriesHandler) findSeries(c *gin.Context) (*models.Series, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var s models.Series
	if err := h.db.First(&s, id).Error; err != nil {
		httperr.NotFound(c, "series_not_found", "Série não encontrada.")
		return nil, false
	}
	return &s, true
}
