package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/adinkra-labs/claims-api/internal/dto"
	"github.com/adinkra-labs/claims-api/internal/models"
	"github.com/adinkra-labs/claims-api/internal/repository"
	appErrors "github.com/adinkra-labs/claims-api/pkg/errors"
)

type claimStore interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id string) (*models.Claim, error)
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
	UpdateStatus(ctx context.Context, params repository.DecideClaimParams) error
}

type claimAuditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// ClaimService orchestrates claim submission and the processor workflow.
type ClaimService struct {
	repo      claimStore
	audit     claimAuditLogger
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClaimService constructs the service. Cache may be nil when claim
// caching is disabled.
func NewClaimService(repo claimStore, audit claimAuditLogger, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClaimService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimService{repo: repo, audit: audit, cache: cache, validator: validate, logger: logger}
}

// Submit validates and normalizes a raw claim payload, then persists the
// aggregate atomically. Validation failures are returned in a single batch so
// the caller can show every problem at once.
func (s *ClaimService) Submit(ctx context.Context, req dto.SubmitClaimRequest, actor *models.JWTClaims) (*models.Claim, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.CenterID == nil || *actor.CenterID == "" {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "submitter is not attached to a center")
	}

	if violations := ValidateSubmission(req); len(violations) > 0 {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, "claim validation failed"), violations)
	}

	claim := NormalizeSubmission(req, actor.UserID, *actor.CenterID, time.Now().UTC())
	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create claim")
	}

	s.invalidateClaimCache(ctx)
	summary, _ := json.Marshal(map[string]interface{}{"claimType": claim.ClaimType, "centerId": claim.CenterID})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionClaimSubmit,
		Resource:   "claim",
		ResourceID: &claim.ID,
		NewValues:  summary,
	})
	return claim, nil
}

// List returns claims visible to the actor: lecturers see their own,
// coordinators their center's, registry staff everything.
func (s *ClaimService) List(ctx context.Context, query dto.ClaimQuery, actor *models.JWTClaims) ([]models.Claim, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	filter := models.ClaimFilter{
		Status:    query.Status,
		ClaimType: query.ClaimType,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}
	switch actor.Role {
	case models.RoleRegistry:
		filter.CenterID = query.CenterID
	case models.RoleCoordinator:
		if actor.CenterID == nil {
			return nil, appErrors.ErrForbidden
		}
		filter.CenterID = *actor.CenterID
	case models.RoleLecturer:
		filter.SubmittedBy = actor.UserID
	default:
		return nil, appErrors.ErrForbidden
	}

	cacheKey := claimListCacheKey(filter)
	var cached []models.Claim
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	claims, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list claims")
	}
	if err := s.cache.Set(ctx, cacheKey, claims, 0); err != nil {
		s.logger.Warn("failed to cache claim listing", zap.Error(err))
	}
	return claims, nil
}

// Get returns a claim enforcing scope constraints.
func (s *ClaimService) Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Claim, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	claim, err := s.loadClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, claim) {
		return nil, appErrors.ErrForbidden
	}
	return claim, nil
}

// Decide applies a processor decision on a pending claim. The repository
// update runs under an optimistic pending check, so a concurrent second
// decision observes the conflict instead of overwriting the first.
func (s *ClaimService) Decide(ctx context.Context, id string, req dto.DecideClaimRequest, actor *models.JWTClaims) (*models.Claim, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "processor identity is required")
	}
	if req.Status != models.ClaimStatusApproved && req.Status != models.ClaimStatusRejected {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be APPROVED or REJECTED")
	}

	claim, err := s.loadClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canDecide(actor, claim.CenterID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "claim belongs to another center")
	}
	if !claim.Status.CanTransition(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("claim is already %s", claim.Status))
	}

	now := time.Now().UTC()
	err = s.repo.UpdateStatus(ctx, repository.DecideClaimParams{
		ID:          claim.ID,
		Status:      req.Status,
		ProcessedBy: actor.UserID,
		ProcessedAt: now,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "claim was already processed")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update claim")
	}

	claim.Status = req.Status
	claim.ProcessedBy = &actor.UserID
	claim.ProcessedAt = &now
	claim.UpdatedAt = now

	s.invalidateClaimCache(ctx)
	decision, _ := json.Marshal(map[string]interface{}{"status": req.Status, "note": req.Note})
	s.emitAudit(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     models.AuditActionClaimDecide,
		Resource:   "claim",
		ResourceID: &claim.ID,
		NewValues:  decision,
	})
	return claim, nil
}

func (s *ClaimService) loadClaim(ctx context.Context, id string) (*models.Claim, error) {
	claim, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load claim")
	}
	return claim, nil
}

func (s *ClaimService) invalidateClaimCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "claims:*"); err != nil {
		s.logger.Warn("failed to invalidate claim cache", zap.Error(err))
	}
}

func (s *ClaimService) emitAudit(ctx context.Context, log *models.AuditLog) {
	if s.audit == nil || log == nil {
		return
	}
	log.IPAddress = "system"
	log.UserAgent = "claim-service"
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to persist audit log", zap.Error(err))
	}
}

func canView(actor *models.JWTClaims, claim *models.Claim) bool {
	switch actor.Role {
	case models.RoleRegistry:
		return true
	case models.RoleCoordinator:
		return actor.CenterID != nil && *actor.CenterID == claim.CenterID
	case models.RoleLecturer:
		return claim.SubmittedBy == actor.UserID
	default:
		return false
	}
}

// canDecide mirrors the authorization policy: coordinators decide claims in
// their own center, registry staff decide anywhere.
func canDecide(actor *models.JWTClaims, centerID string) bool {
	switch actor.Role {
	case models.RoleRegistry:
		return true
	case models.RoleCoordinator:
		return actor.CenterID != nil && *actor.CenterID == centerID
	default:
		return false
	}
}

func claimListCacheKey(filter models.ClaimFilter) string {
	return fmt.Sprintf("claims:list:%v:%s:%s:%s:%d:%d",
		filter.Status, filter.ClaimType, filter.CenterID, filter.SubmittedBy, filter.Limit, filter.Offset)
}
