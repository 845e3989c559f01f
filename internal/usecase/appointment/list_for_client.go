package appointment

import (
	"context"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/models"
)

type ListForClient struct {
	repo domain.Repository
}

func NewListForClient(repo domain.Repository) *ListForClient {
	return &ListForClient{repo: repo}
}

func (uc *ListForClient) Execute(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListForClient(ctx, clientID)
}
