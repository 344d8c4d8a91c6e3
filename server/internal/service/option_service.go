package service

import (
	"github.com/openquant/nsechain/internal/market"
	"github.com/openquant/nsechain/internal/models"
	"github.com/openquant/nsechain/server/internal/repository"
	"github.com/openquant/nsechain/utils"
)

const latestLimit = 10

type OptionChainService struct {
	repo     repository.OptionRepository
	calendar *market.Calendar
}

func NewOptionChainService(repo repository.OptionRepository, calendar *market.Calendar) *OptionChainService {
	return &OptionChainService{
		repo:     repo,
		calendar: calendar,
	}
}

func (s *OptionChainService) GetLatestRows() ([]models.OptionRow, error) {
	return s.repo.GetLatestRows(latestLimit)
}

func (s *OptionChainService) GetLatestRowsPerUnderlying() (map[string][]models.OptionRow, error) {
	underlyings, err := s.repo.GetUnderlyings()
	if err != nil {
		return nil, err
	}
	if len(underlyings) == 0 {
		return map[string][]models.OptionRow{}, nil
	}
	return s.repo.GetLatestRowsGroupByUnderlying(underlyings, latestLimit)
}

func (s *OptionChainService) GetRowsCount(underlying string) (int64, error) {
	return s.repo.GetRowsCount(underlying)
}

func (s *OptionChainService) GetRowCountPerUnderlying() (map[string]int64, error) {
	return s.repo.GetRowCountGroupByUnderlying()
}

// MarketStatus reports whether the trading session is currently open.
func (s *OptionChainService) MarketStatus() market.Status {
	return s.calendar.Status(utils.NowIST())
}
