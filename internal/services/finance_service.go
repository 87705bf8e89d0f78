package services

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/cache"
	"gescom/internal/models"
	"gescom/internal/repository"
)

// PeriodBilan is the statement for one period.
type PeriodBilan struct {
	Periode          string `json:"periode"`
	ChiffreAffaires  int    `json:"chiffreAffaires"`
	CoutVentes       int    `json:"coutVentes"`
	MargeBrute       int    `json:"margeBrute"`
	MargePourcentage string `json:"margePourcentage"`
}

// BilanResponse covers the current period, the immediately preceding one,
// and the percentage variation between them.
type BilanResponse struct {
	Current   PeriodBilan    `json:"current"`
	Previous  PeriodBilan    `json:"previous"`
	Variation BilanVariation `json:"variation"`
}

type BilanVariation struct {
	CA    string `json:"ca"`
	Cout  string `json:"cout"`
	Marge string `json:"marge"`
}

// FinanceService computes period statements from the transaction ledger. It
// is a pure function of the ledger and the injected clock; the redis cache
// only short-circuits repeated reads.
type FinanceService interface {
	BilanHebdomadaire(ctx context.Context) (*BilanResponse, error)
	BilanMensuel(ctx context.Context) (*BilanResponse, error)
	BilanAnnuel(ctx context.Context) (*BilanResponse, error)
}

type financeService struct {
	transactionRepo repository.TransactionRepository
	cache           *cache.Client
	cacheTTL        time.Duration
	now             func() time.Time
}

func NewFinanceService(transactionRepo repository.TransactionRepository, cacheClient *cache.Client, now func() time.Time) FinanceService {
	if now == nil {
		now = time.Now
	}
	return &financeService{
		transactionRepo: transactionRepo,
		cache:           cacheClient,
		cacheTTL:        5 * time.Minute,
		now:             now,
	}
}

func (s *financeService) BilanHebdomadaire(ctx context.Context) (*BilanResponse, error) {
	now := s.now()
	curStart := startOfWeek(now)
	curEnd := endOfDay(curStart.AddDate(0, 0, 6))
	prevStart := curStart.AddDate(0, 0, -7)
	prevEnd := endOfDay(prevStart.AddDate(0, 0, 6))

	label := func(start, end time.Time) string {
		return fmt.Sprintf("%s - %s", start.Format("02"), end.Format("02 Jan 2006"))
	}
	return s.bilan(ctx, "hebdomadaire", curStart, curEnd, prevStart, prevEnd,
		label(curStart, curEnd), label(prevStart, prevEnd))
}

func (s *financeService) BilanMensuel(ctx context.Context) (*BilanResponse, error) {
	now := s.now()
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	curEnd := endOfDay(curStart.AddDate(0, 1, -1))
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := endOfDay(curStart.AddDate(0, 0, -1))

	return s.bilan(ctx, "mensuel", curStart, curEnd, prevStart, prevEnd,
		curStart.Format("January 2006"), prevStart.Format("January 2006"))
}

func (s *financeService) BilanAnnuel(ctx context.Context) (*BilanResponse, error) {
	now := s.now()
	curStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	curEnd := endOfDay(time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location()))
	prevStart := curStart.AddDate(-1, 0, 0)
	prevEnd := endOfDay(time.Date(now.Year()-1, 12, 31, 0, 0, 0, 0, now.Location()))

	return s.bilan(ctx, "annuel", curStart, curEnd, prevStart, prevEnd,
		curStart.Format("2006"), prevStart.Format("2006"))
}

func (s *financeService) bilan(ctx context.Context, periode string, curStart, curEnd, prevStart, prevEnd time.Time, curLabel, prevLabel string) (*BilanResponse, error) {
	var cached BilanResponse
	if s.cache.GetBilan(ctx, periode, &cached) {
		return &cached, nil
	}

	curTx, err := s.transactionRepo.GetByDateRange(curStart, curEnd)
	if err != nil {
		return nil, err
	}
	prevTx, err := s.transactionRepo.GetByDateRange(prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	cur := calculateStats(curTx)
	prev := calculateStats(prevTx)

	resp := &BilanResponse{
		Current:  periodBilan(curLabel, cur),
		Previous: periodBilan(prevLabel, prev),
		Variation: BilanVariation{
			CA:    variation(cur.ca, prev.ca),
			Cout:  variation(cur.cout, prev.cout),
			Marge: variation(cur.marge, prev.marge),
		},
	}

	// cached copy expires on its own; nothing to invalidate
	_ = s.cache.SetBilan(ctx, periode, resp, s.cacheTTL)
	return resp, nil
}

type stats struct {
	ca    int
	cout  int
	marge int
}

func calculateStats(transactions []models.Transaction) stats {
	var st stats
	for _, t := range transactions {
		montant := t.PrixUnitaire * t.Quantite
		switch t.Type {
		case models.Sortie:
			st.ca += montant
		case models.Entree:
			st.cout += montant
		}
	}
	st.marge = st.ca - st.cout
	return st
}

func periodBilan(label string, st stats) PeriodBilan {
	pct := "0.0"
	if st.ca > 0 {
		pct = fmt.Sprintf("%.1f", float64(st.marge)/float64(st.ca)*100)
	}
	return PeriodBilan{
		Periode:          label,
		ChiffreAffaires:  st.ca,
		CoutVentes:       st.cout,
		MargeBrute:       st.marge,
		MargePourcentage: pct + "%",
	}
}

// variation formats the period-over-period change, special-casing an empty
// previous period so there is never a division by zero.
func variation(current, previous int) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	v := float64(current-previous) / float64(previous) * 100
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// startOfWeek returns midnight of the ISO week's Monday.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week, it does not start it
	}
	day := t.AddDate(0, 0, -(wd - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
