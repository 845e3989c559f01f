package appointment

import (
	"context"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
	"github.com/charmcut/charmcut-api/internal/dto"
	"github.com/charmcut/charmcut-api/internal/timezone"
)

type ListAgenda struct {
	repo domain.Repository
}

func NewListAgenda(repo domain.Repository) *ListAgenda {
	return &ListAgenda{repo: repo}
}

// Execute returns the barber's future non-terminal appointments, ascending
// by scheduled time.
func (uc *ListAgenda) Execute(
	ctx context.Context,
	barberID uint,
) ([]dto.AgendaEntryDTO, error) {

	cfg, err := uc.repo.GetShopConfig(ctx)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(cfg.Timezone)

	appointments, err := uc.repo.ListAgenda(ctx, barberID, now)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AgendaEntryDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AgendaEntryDTO{
			ID:          ap.ID,
			ScheduledAt: ap.ScheduledAt,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			Notes:       ap.Notes,
		})
	}

	return out, nil
}
