package commission

import (
	"context"
	"strings"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/deal"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AgreementService manages standing commission agreements
type AgreementService struct {
	repo     commission.AgreementRepository
	dealRepo deal.Repository
	logger   *zap.Logger
}

// NewAgreementService creates a new AgreementService
func NewAgreementService(repo commission.AgreementRepository, dealRepo deal.Repository, logger *zap.Logger) *AgreementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgreementService{repo: repo, dealRepo: dealRepo, logger: logger}
}

// Create registers an agreement on a deal
func (s *AgreementService) Create(ctx context.Context, actor shared.Actor, req CreateAgreementRequest) (*AgreementResponse, error) {
	d, err := s.dealRepo.FindByIDForTenant(ctx, actor.TenantID, req.DealID)
	if err != nil {
		return nil, err
	}
	if !commission.CanRecord(actor, d) {
		return nil, shared.ErrForbidden.WithMessage("Only staff admins or the deal's arranger may create agreements")
	}

	currency := d.Currency
	if strings.TrimSpace(req.Currency) != "" {
		currency, err = valueobject.ParseCurrency(req.Currency)
		if err != nil {
			return nil, shared.ErrInvalidInput.WithMessage(err.Error())
		}
	}
	input := commission.NewAgreementInput{
		DealID:      d.ID,
		PartyKind:   commission.PartyKind(req.PartyKind),
		PartyID:     req.PartyID,
		ArrangerID:  d.ArrangerID,
		BasisType:   commission.BasisType(req.BasisType),
		RateBps:     req.RateBps,
		Currency:    currency,
		EffectiveTo: req.EffectiveTo,
	}
	if req.EffectiveFrom != nil {
		input.EffectiveFrom = *req.EffectiveFrom
	}

	a, err := commission.NewAgreement(actor, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("commission agreement created",
		zap.String("agreement_id", a.ID.String()),
		zap.String("deal_id", a.DealID.String()),
		zap.String("basis_type", a.BasisType.String()),
		zap.Int("rate_bps", a.RateBps),
	)
	resp := ToAgreementResponse(a)
	return &resp, nil
}

// ListForDeal returns every agreement of a deal
func (s *AgreementService) ListForDeal(ctx context.Context, tenantID, dealID uuid.UUID) ([]AgreementResponse, error) {
	agreements, err := s.repo.FindAllForDeal(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}
	out := make([]AgreementResponse, 0, len(agreements))
	for i := range agreements {
		out = append(out, ToAgreementResponse(&agreements[i]))
	}
	return out, nil
}

// Deactivate stops future accruals under an agreement. Existing commissions are untouched.
func (s *AgreementService) Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*AgreementResponse, error) {
	a, err := s.repo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	d, err := s.dealRepo.FindByIDForTenant(ctx, actor.TenantID, a.DealID)
	if err != nil {
		return nil, err
	}
	if !commission.CanRecord(actor, d) {
		return nil, shared.ErrForbidden.WithMessage("Only staff admins or the deal's arranger may change agreements")
	}
	a.Deactivate()
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAgreementResponse(a)
	return &resp, nil
}
