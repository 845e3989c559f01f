package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/pwa"
)

const visitorCookie = "visitor_id"

// PWAHandler bridges the browser's platform signals to the server-side
// install session and serves the app shell through the offline cache.
type PWAHandler struct {
	manager *pwa.Manager
	seen    pwa.SeenStore
	cache   *pwa.Cache
}

func NewPWAHandler(manager *pwa.Manager, seen pwa.SeenStore, cache *pwa.Cache) *PWAHandler {
	return &PWAHandler{
		manager: manager,
		seen:    seen,
		cache:   cache,
	}
}

// visitorID reads the per-visitor cookie, minting one on first contact.
func (h *PWAHandler) visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookie); err == nil && id != "" {
		return id
	}

	id := uuid.NewString()
	c.SetCookie(visitorCookie, id, 60*60*24*365, "/", "", false, true)
	return id
}

// ======================================================
// INSTALL SESSION
// ======================================================

type SignalRequest struct {
	// ready | installed | choice | closed
	Type       string `json:"type" binding:"required"`
	Standalone bool   `json:"standalone"`
	Outcome    string `json:"outcome"`
}

func (h *PWAHandler) State(c *gin.Context) {
	id := h.visitorID(c)

	seen, err := h.seen.Seen(c.Request.Context(), id)
	if err != nil {
		httperr.Internal(c, "seen_flag_failed", "Erro ao consultar estado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":       h.manager.State(id),
		"prompt_seen": seen,
	})
}

// Signal ingests the platform events relayed by the page.
func (h *PWAHandler) Signal(c *gin.Context) {
	id := h.visitorID(c)

	var req SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	switch req.Type {
	case "ready":
		h.manager.CaptureReadiness(id, req.Standalone)
	case "installed":
		h.manager.MarkInstalled(id)
	case "choice":
		outcome := pwa.Outcome(req.Outcome)
		if outcome != pwa.OutcomeAccepted && outcome != pwa.OutcomeDeclined {
			httperr.BadRequest(c, "invalid_outcome", "Resultado inválido.")
			return
		}
		h.manager.ResolveChoice(id, outcome)
		if err := h.seen.MarkSeen(c.Request.Context(), id); err != nil {
			httperr.Internal(c, "seen_flag_failed", "Erro ao gravar estado.")
			return
		}
	case "closed":
		h.manager.Close(id)
	default:
		httperr.BadRequest(c, "invalid_signal", "Sinal desconhecido.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": h.manager.State(id)})
}

// Install long-polls: it suspends until the choice signal resolves the
// prompt, mirroring the await on the browser's userChoice.
func (h *PWAHandler) Install(c *gin.Context) {
	id := h.visitorID(c)

	outcome, err := h.manager.Install(c.Request.Context(), id)
	if err != nil {
		if httperr.IsBusiness(err, "install_unavailable") {
			httperr.Unavailable(c, "install_unavailable",
				"Não foi possível instalar o app. Use um navegador compatível.")
			return
		}
		httperr.Internal(c, "install_failed", "Erro ao instalar o app.")
		return
	}

	if err := h.seen.MarkSeen(c.Request.Context(), id); err != nil {
		httperr.Internal(c, "seen_flag_failed", "Erro ao gravar estado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
		"state":   h.manager.State(id),
	})
}

// DismissPrompt records the one-time "seen" flag when the user waves the
// suggestion away without installing.
func (h *PWAHandler) DismissPrompt(c *gin.Context) {
	id := h.visitorID(c)

	if err := h.seen.MarkSeen(c.Request.Context(), id); err != nil {
		httperr.Internal(c, "seen_flag_failed", "Erro ao gravar estado.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// CACHED ASSETS
// ======================================================

// Asset serves the app shell cache-first with network fallback.
func (h *PWAHandler) Asset(c *gin.Context) {
	path := c.Param("filepath")
	if path == "" {
		path = "/"
	}

	entry, err := h.cache.Serve(c.Request.Context(), path)
	if err != nil {
		httperr.Write(c, http.StatusBadGateway, "resource_unavailable", "Recurso indisponível.")
		return
	}

	c.Data(http.StatusOK, entry.ContentType, entry.Body)
}
