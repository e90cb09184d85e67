package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adinkra-labs/claims-api/internal/dto"
	"github.com/adinkra-labs/claims-api/internal/models"
	"github.com/adinkra-labs/claims-api/internal/repository"
	appErrors "github.com/adinkra-labs/claims-api/pkg/errors"
)

type claimRepoStub struct {
	claims    map[string]*models.Claim
	filter    models.ClaimFilter
	updateErr error
}

func newClaimRepoStub() *claimRepoStub {
	return &claimRepoStub{claims: make(map[string]*models.Claim)}
}

func (r *claimRepoStub) Create(ctx context.Context, claim *models.Claim) error {
	if claim.ID == "" {
		claim.ID = "claim-1"
	}
	r.claims[claim.ID] = claim
	return nil
}

func (r *claimRepoStub) GetByID(ctx context.Context, id string) (*models.Claim, error) {
	if claim, ok := r.claims[id]; ok {
		copy := *claim
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (r *claimRepoStub) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	r.filter = filter
	result := make([]models.Claim, 0, len(r.claims))
	for _, claim := range r.claims {
		result = append(result, *claim)
	}
	return result, nil
}

func (r *claimRepoStub) UpdateStatus(ctx context.Context, params repository.DecideClaimParams) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	claim, ok := r.claims[params.ID]
	if !ok || claim.Status != models.ClaimStatusPending {
		return sql.ErrNoRows
	}
	claim.Status = params.Status
	claim.ProcessedBy = &params.ProcessedBy
	claim.ProcessedAt = &params.ProcessedAt
	return nil
}

type claimAuditStub struct {
	logs []*models.AuditLog
}

func (a *claimAuditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func lecturerClaims(userID, centerID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: userID, Role: models.RoleLecturer, CenterID: &centerID}
}

func coordinatorClaims(userID, centerID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: userID, Role: models.RoleCoordinator, CenterID: &centerID}
}

func TestClaimServiceSubmit(t *testing.T) {
	repo := newClaimRepoStub()
	audit := &claimAuditStub{}
	svc := NewClaimService(repo, audit, nil, nil, nil)

	claim, err := svc.Submit(context.Background(), validTeachingRequest(), lecturerClaims("lecturer-1", "center-1"))
	require.NoError(t, err)
	require.Equal(t, models.ClaimStatusPending, claim.Status)
	require.Equal(t, "lecturer-1", claim.SubmittedBy)
	require.Equal(t, "center-1", claim.CenterID)
	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionClaimSubmit, audit.logs[0].Action)
}

func TestClaimServiceSubmitReturnsViolationBatch(t *testing.T) {
	repo := newClaimRepoStub()
	svc := NewClaimService(repo, &claimAuditStub{}, nil, nil, nil)

	req := dto.SubmitClaimRequest{ClaimType: string(models.ClaimTypeTeaching)}
	_, err := svc.Submit(context.Background(), req, lecturerClaims("lecturer-1", "center-1"))
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	violations, ok := appErr.Details.([]models.Violation)
	require.True(t, ok)
	require.Len(t, violations, 5)
	require.Empty(t, repo.claims, "invalid submission must not persist")
}

func TestClaimServiceSubmitRequiresCenter(t *testing.T) {
	svc := NewClaimService(newClaimRepoStub(), &claimAuditStub{}, nil, nil, nil)

	actor := &models.JWTClaims{UserID: "lecturer-1", Role: models.RoleLecturer}
	_, err := svc.Submit(context.Background(), validTeachingRequest(), actor)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestClaimServiceListScoping(t *testing.T) {
	repo := newClaimRepoStub()
	svc := NewClaimService(repo, &claimAuditStub{}, nil, nil, nil)

	_, err := svc.List(context.Background(), dto.ClaimQuery{}, lecturerClaims("lecturer-1", "center-1"))
	require.NoError(t, err)
	require.Equal(t, "lecturer-1", repo.filter.SubmittedBy)
	require.Empty(t, repo.filter.CenterID)

	_, err = svc.List(context.Background(), dto.ClaimQuery{}, coordinatorClaims("coord-1", "center-1"))
	require.NoError(t, err)
	require.Equal(t, "center-1", repo.filter.CenterID)
	require.Empty(t, repo.filter.SubmittedBy)

	registry := &models.JWTClaims{UserID: "registry-1", Role: models.RoleRegistry}
	_, err = svc.List(context.Background(), dto.ClaimQuery{CenterID: "center-9"}, registry)
	require.NoError(t, err)
	require.Equal(t, "center-9", repo.filter.CenterID)
}

func TestClaimServiceGetEnforcesScope(t *testing.T) {
	repo := newClaimRepoStub()
	repo.claims["claim-1"] = &models.Claim{
		ID:          "claim-1",
		ClaimType:   models.ClaimTypeTeaching,
		Status:      models.ClaimStatusPending,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
	}
	svc := NewClaimService(repo, &claimAuditStub{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "claim-1", lecturerClaims("lecturer-1", "center-1"))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "claim-1", lecturerClaims("lecturer-2", "center-1"))
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "claim-1", coordinatorClaims("coord-1", "center-2"))
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "missing", lecturerClaims("lecturer-1", "center-1"))
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClaimServiceDecideApprove(t *testing.T) {
	repo := newClaimRepoStub()
	repo.claims["claim-1"] = &models.Claim{
		ID:          "claim-1",
		ClaimType:   models.ClaimTypeTeaching,
		Status:      models.ClaimStatusPending,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
	}
	audit := &claimAuditStub{}
	svc := NewClaimService(repo, audit, nil, nil, nil)

	claim, err := svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: models.ClaimStatusApproved}, coordinatorClaims("coord-1", "center-1"))
	require.NoError(t, err)
	require.Equal(t, models.ClaimStatusApproved, claim.Status)
	require.Equal(t, "coord-1", *claim.ProcessedBy)
	require.NotNil(t, claim.ProcessedAt)
	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionClaimDecide, audit.logs[0].Action)
}

func TestClaimServiceDecideIsFinal(t *testing.T) {
	repo := newClaimRepoStub()
	processedAt := time.Now().UTC()
	processedBy := "coord-1"
	repo.claims["claim-1"] = &models.Claim{
		ID:          "claim-1",
		Status:      models.ClaimStatusApproved,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
		ProcessedBy: &processedBy,
		ProcessedAt: &processedAt,
	}
	svc := NewClaimService(repo, &claimAuditStub{}, nil, nil, nil)

	for _, next := range []models.ClaimStatus{models.ClaimStatusApproved, models.ClaimStatusRejected} {
		_, err := svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: next}, coordinatorClaims("coord-1", "center-1"))
		require.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
	}
}

func TestClaimServiceDecideConcurrentConflict(t *testing.T) {
	repo := newClaimRepoStub()
	repo.claims["claim-1"] = &models.Claim{
		ID:          "claim-1",
		Status:      models.ClaimStatusPending,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
	}
	// first read sees PENDING but the row flips before the update lands
	repo.updateErr = sql.ErrNoRows
	svc := NewClaimService(repo, &claimAuditStub{}, nil, nil, nil)

	_, err := svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: models.ClaimStatusRejected}, coordinatorClaims("coord-1", "center-1"))
	require.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestClaimServiceDecideRejectsInvalidStatus(t *testing.T) {
	svc := NewClaimService(newClaimRepoStub(), &claimAuditStub{}, nil, nil, nil)

	for _, status := range []models.ClaimStatus{models.ClaimStatusPending, "CANCELLED", ""} {
		_, err := svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: status}, coordinatorClaims("coord-1", "center-1"))
		require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestClaimServiceDecideCrossCenterForbidden(t *testing.T) {
	repo := newClaimRepoStub()
	repo.claims["claim-1"] = &models.Claim{
		ID:          "claim-1",
		Status:      models.ClaimStatusPending,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
	}
	svc := NewClaimService(repo, &claimAuditStub{}, nil, nil, nil)

	_, err := svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: models.ClaimStatusApproved}, coordinatorClaims("coord-2", "center-2"))
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	registry := &models.JWTClaims{UserID: "registry-1", Role: models.RoleRegistry}
	_, err = svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: models.ClaimStatusApproved}, registry)
	require.NoError(t, err)
}

func TestClaimServiceDecideRequiresProcessor(t *testing.T) {
	svc := NewClaimService(newClaimRepoStub(), &claimAuditStub{}, nil, nil, nil)

	actor := &models.JWTClaims{Role: models.RoleCoordinator}
	_, err := svc.Decide(context.Background(), "claim-1", dto.DecideClaimRequest{Status: models.ClaimStatusApproved}, actor)
	require.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}
