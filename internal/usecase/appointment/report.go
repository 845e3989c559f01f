package appointment

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	domain "github.com/charmcut/charmcut-api/internal/domain/appointment"
)

// ======================================================
// OUTPUT
// ======================================================

type ReportSummary struct {
	TotalAppointments int64           `json:"total_appointments"`
	Finalized         int64           `json:"finalized"`
	Revenue           decimal.Decimal `json:"revenue"`
	CompletionRate    int             `json:"completion_rate"`
	ActiveClients     int64           `json:"active_clients"`
	ActiveBarbers     int64           `json:"active_barbers"`
}

type BarberBreakdownEntry struct {
	Date        string          `json:"date"`
	ClientName  string          `json:"client_name"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
}

type BarberBreakdown struct {
	BarberName   string                 `json:"barber_name"`
	Appointments int                    `json:"appointments"`
	Clients      int                    `json:"clients"`
	Revenue      decimal.Decimal        `json:"revenue"`
	Entries      []BarberBreakdownEntry `json:"entries"`
}

type Report struct {
	Summary   ReportSummary     `json:"summary"`
	PerBarber []BarberBreakdown `json:"per_barber"`
}

// ======================================================
// USE CASE
// ======================================================

type BuildReport struct {
	repo domain.Repository
}

func NewBuildReport(repo domain.Repository) *BuildReport {
	return &BuildReport{repo: repo}
}

func (uc *BuildReport) Execute(ctx context.Context) (*Report, error) {

	total, err := uc.repo.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}

	finalized, err := uc.repo.CountAppointmentsByStatus(ctx, domain.StatusFinalized)
	if err != nil {
		return nil, err
	}

	revenue, err := uc.repo.SumFinalizedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := uc.repo.CountDistinctClients(ctx)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.CountActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(finalized) / float64(total) * 100))
	}

	detailed, err := uc.repo.ListFinalizedDetailed(ctx)
	if err != nil {
		return nil, err
	}

	// Grouped by barber id, not name: two barbers may share a name.
	byBarber := map[uint]*BarberBreakdown{}
	clientsOf := map[uint]map[uint]bool{}
	order := []uint{}

	for _, ap := range detailed {
		bd, ok := byBarber[ap.BarberID]
		if !ok {
			bd = &BarberBreakdown{BarberName: ap.Barber.Name, Revenue: decimal.Zero}
			byBarber[ap.BarberID] = bd
			clientsOf[ap.BarberID] = map[uint]bool{}
			order = append(order, ap.BarberID)
		}

		bd.Appointments++
		bd.Revenue = bd.Revenue.Add(ap.Service.Price)
		clientsOf[ap.BarberID][ap.ClientID] = true
		bd.Entries = append(bd.Entries, BarberBreakdownEntry{
			Date:        ap.ScheduledAt.Format("2006-01-02"),
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			Price:       ap.Service.Price,
		})
	}

	perBarber := make([]BarberBreakdown, 0, len(order))
	for _, id := range order {
		bd := byBarber[id]
		bd.Clients = len(clientsOf[id])
		perBarber = append(perBarber, *bd)
	}

	return &Report{
		Summary: ReportSummary{
			TotalAppointments: total,
			Finalized:         finalized,
			Revenue:           revenue,
			CompletionRate:    rate,
			ActiveClients:     clients,
			ActiveBarbers:     barbers,
		},
		PerBarber: perBarber,
	}, nil
}
