package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/imaging"
	"github.com/charmcut/charmcut-api/internal/models"
	"github.com/charmcut/charmcut-api/internal/storage"
	"github.com/charmcut/charmcut-api/internal/timezone"
)

type ShopConfigHandler struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewShopConfigHandler(db *gorm.DB, blobs storage.BlobStore) *ShopConfigHandler {
	return &ShopConfigHandler{db: db, blobs: blobs}
}

type UpdateShopConfigRequest struct {
	Name              *string `json:"name,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

// loadOrInit returns the singleton row, creating it on first access.
func (h *ShopConfigHandler) loadOrInit() (*models.ShopConfig, error) {
	var cfg models.ShopConfig
	err := h.db.Order("id ASC").First(&cfg).Error
	if err == nil {
		return &cfg, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cfg = models.ShopConfig{
		Name:     "CharmCut",
		Timezone: timezone.DefaultTimezone,
	}
	if err := h.db.Create(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get is public: every page reads the config for branding.
func (h *ShopConfigHandler) Get(c *gin.Context) {
	cfg, err := h.loadOrInit()
	if err != nil {
		httperr.Internal(c, "failed_to_get_config", "Erro ao buscar configurações.")
		return
	}

	logoURL := ""
	if cfg.LogoKey != "" {
		logoURL = h.blobs.PublicURL(cfg.LogoKey)
	}

	c.JSON(http.StatusOK, gin.H{
		"config":   cfg,
		"logo_url": logoURL,
	})
}

func (h *ShopConfigHandler) Update(c *gin.Context) {
	cfg, err := h.loadOrInit()
	if err != nil {
		httperr.Internal(c, "failed_to_get_config", "Erro ao buscar configurações.")
		return
	}

	var req UpdateShopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.Address != nil {
		cfg.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		cfg.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		cfg.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(cfg).Error; err != nil {
		httperr.Internal(c, "failed_to_update_config", "Erro ao salvar as configurações.")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *ShopConfigHandler) UploadLogo(c *gin.Context) {
	cfg, err := h.loadOrInit()
	if err != nil {
		httperr.Internal(c, "failed_to_get_config", "Erro ao buscar configurações.")
		return
	}

	file, _, err := c.Request.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo de imagem obrigatório.")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida. JPG, PNG ou WEBP até 2MB.")
		return
	}

	key := "logos/" + uuid.NewString() + ".webp"
	url, err := h.blobs.Put(c.Request.Context(), key, processed.Data, processed.MIME)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_logo", "Erro ao enviar imagem.")
		return
	}

	cfg.LogoKey = key
	if err := h.db.Save(cfg).Error; err != nil {
		httperr.Internal(c, "failed_to_update_config", "Erro ao salvar as configurações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
