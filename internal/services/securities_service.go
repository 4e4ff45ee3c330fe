package services

import (
	"context"
	"fmt"

	"github.com/anushv/investments/internal/ledger"
	"github.com/anushv/investments/internal/models"
	"github.com/anushv/investments/internal/repository"
)

// SecuritiesService lists open securities for display.
type SecuritiesService struct {
	securityRepo *repository.SecurityRepository
}

// NewSecuritiesService creates a new SecuritiesService
func NewSecuritiesService(securityRepo *repository.SecurityRepository) *SecuritiesService {
	return &SecuritiesService{securityRepo: securityRepo}
}

// ListOpen returns the open securities of the requested type with a display label.
func (s *SecuritiesService) ListOpen(ctx context.Context, secType models.SecurityType) ([]models.SecurityListing, error) {
	switch secType {
	case models.SecurityTypeShare:
		shares, err := s.securityRepo.ListShares(ctx, true)
		if err != nil {
			return nil, err
		}
		listings := make([]models.SecurityListing, 0, len(shares))
		for _, share := range shares {
			listings = append(listings, toListing(share))
		}
		return listings, nil

	case models.SecurityTypeOption:
		options, err := s.securityRepo.ListOptions(ctx, true)
		if err != nil {
			return nil, err
		}
		listings := make([]models.SecurityListing, 0, len(options))
		for _, opt := range options {
			listings = append(listings, toListing(opt))
		}
		return listings, nil

	default:
		return nil, fmt.Errorf("%w: unknown security type %q", ledger.ErrInvalidTransaction, secType)
	}
}

func toListing(sec models.Security) models.SecurityListing {
	pos := sec.Pos()
	return models.SecurityListing{
		ID:        pos.ID,
		Label:     sec.Label(),
		NumOpen:   pos.NumOpen,
		CostBasis: pos.CostBasis,
	}
}
