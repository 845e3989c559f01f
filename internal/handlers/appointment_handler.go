package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/httpresp"
	"github.com/charmcut/charmcut-api/internal/middleware"
	ucAppointment "github.com/charmcut/charmcut-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	transitionUC *ucAppointment.TransitionAppointment
	agendaUC     *ucAppointment.ListAgenda
	clientListUC *ucAppointment.ListForClient
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
	agendaUC *ucAppointment.ListAgenda,
	clientListUC *ucAppointment.ListForClient,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		agendaUC:     agendaUC,
		clientListUC: clientListUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE (client)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	by := middleware.ActorFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), by, ucAppointment.CreateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// TRANSITION
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	by := middleware.ActorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.transitionUC.Execute(
		c.Request.Context(),
		by,
		uint(id),
		domain.Status(req.Status),
	)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Cancel is the client-facing shortcut for the cancelled transition.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	by := middleware.ActorFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.transitionUC.Execute(
		c.Request.Context(),
		by,
		uint(id),
		domain.StatusCancelled,
	)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) Agenda(c *gin.Context) {
	by := middleware.ActorFrom(c)

	entries, err := h.agendaUC.Execute(c.Request.Context(), by.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_agenda", "Erro ao listar agenda.")
		return
	}

	httpresp.List(c, entries)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	by := middleware.ActorFrom(c)

	apps, err := h.clientListUC.Execute(c.Request.Context(), by.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"),
		httperr.IsBusiness(err, "service_not_found"),
		httperr.IsBusiness(err, "barber_not_found"):
		httperr.NotFound(c, err.Error(), "Registro não encontrado.")
	case httperr.IsBusiness(err, "invalid_transition"),
		httperr.IsBusiness(err, "invalid_status"):
		httperr.Unprocessable(c, err.Error(), "Transição de status inválida.")
	case httperr.IsBusiness(err, "actor_not_allowed"):
		httperr.Forbidden(c, err.Error(), "Operação não permitida para este perfil.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, err.Error(), "Conflito de horário.")
	case httperr.IsAnyBusiness(err):
		httperr.BadRequest(c, err.Error(), "Requisição inválida.")
	default:
		httperr.Internal(c, "store_failure", "Erro interno.")
	}
}
