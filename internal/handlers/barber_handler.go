package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/charmcut/charmcut-api/internal/domain/actor"
	"github.com/charmcut/charmcut-api/internal/httperr"
	"github.com/charmcut/charmcut-api/internal/imaging"
	"github.com/charmcut/charmcut-api/internal/middleware"
	"github.com/charmcut/charmcut-api/internal/models"
	"github.com/charmcut/charmcut-api/internal/storage"
)

type BarberHandler struct {
	db    *gorm.DB
	blobs storage.BlobStore
}

func NewBarberHandler(db *gorm.DB, blobs storage.BlobStore) *BarberHandler {
	return &BarberHandler{db: db, blobs: blobs}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	Phone *string `json:"phone,omitempty"`
}

type barberView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Active    bool   `json:"active"`
	AvatarURL string `json:"avatar_url"`
}

func (h *BarberHandler) view(b *models.User) barberView {
	v := barberView{
		ID:     b.ID,
		Name:   b.Name,
		Phone:  b.Phone,
		Active: b.Active,
	}
	if b.AvatarKey != "" {
		v.AvatarURL = h.blobs.PublicURL(b.AvatarKey)
	}
	return v
}

// --------- Handlers ---------

// ListPublic returns active barbers for the booking page.
func (h *BarberHandler) ListPublic(c *gin.Context) {
	var barbers []models.User
	if err := h.db.
		Where("role = ? AND active = true", string(actor.RoleBarber)).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]barberView, 0, len(barbers))
	for i := range barbers {
		out = append(out, h.view(&barbers[i]))
	}

	c.JSON(http.StatusOK, out)
}

// List is the admin view, inactive included.
func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.User
	if err := h.db.
		Where("role = ?", string(actor.RoleBarber)).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar barbeiro.")
		return
	}

	barber := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         string(actor.RoleBarber),
		Active:       true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	c.JSON(http.StatusCreated, barber)
}

// Update is the admin edit: name, phone, active toggle. Barbers are
// deactivated, never deleted.
func (h *BarberHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var barber models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, string(actor.RoleBarber)).
		First(&barber).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao salvar barbeiro.")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// UpdateProfile is the barber's self-edit, limited to contact info.
func (h *BarberHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.User
	if err := h.db.First(&barber, userID).Error; err != nil {
		httperr.Internal(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Phone != nil {
		barber.Phone = *req.Phone
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Erro ao salvar perfil.")
		return
	}

	c.JSON(http.StatusOK, h.view(&barber))
}

// UploadAvatar validates, re-encodes and stores the barber's avatar.
func (h *BarberHandler) UploadAvatar(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var barber models.User
	if err := h.db.First(&barber, userID).Error; err != nil {
		httperr.Internal(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("avatar")
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

	key := "avatars/" + uuid.NewString() + ".webp"
	url, err := h.blobs.Put(c.Request.Context(), key, processed.Data, processed.MIME)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_avatar", "Erro ao enviar imagem.")
		return
	}

	barber.AvatarKey = key
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao salvar barbeiro.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
