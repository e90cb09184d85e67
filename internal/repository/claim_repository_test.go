package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/adinkra-labs/claims-api/internal/models"
)

func newClaimRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestClaimRepositoryCreateTeaching(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()

	repo := NewClaimRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO claims")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	courseCode := "CS101"
	claim := &models.Claim{
		ClaimType:   models.ClaimTypeTeaching,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
		CourseCode:  &courseCode,
	}
	require.NoError(t, repo.Create(context.Background(), claim))
	require.NotEmpty(t, claim.ID)
	require.Equal(t, models.ClaimStatusPending, claim.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepositoryCreateWithStudentsIsTransactional(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()

	repo := NewClaimRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO claims")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO supervised_students")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO supervised_students")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	thesisType := models.ThesisTypeSupervision
	claim := &models.Claim{
		ClaimType:   models.ClaimTypeThesisProject,
		SubmittedBy: "lecturer-1",
		CenterID:    "center-1",
		ThesisType:  &thesisType,
		SupervisedStudents: []models.SupervisedStudent{
			{StudentName: "Ama Mensah", ThesisTitle: "Edge Caching Strategies"},
			{StudentName: "Kofi Owusu", ThesisTitle: "Queue Scheduling"},
		},
	}
	require.Error(t, repo.Create(context.Background(), claim))
	require.NoError(t, mock.ExpectationsWereMet())
}

func claimRowColumns() []string {
	return []string{
		"id", "claim_type", "status", "submitted_by", "center_id", "processed_by", "submitted_at", "updated_at", "processed_at",
		"course_code", "course_title", "teaching_date", "teaching_start_time", "teaching_end_time", "teaching_hours",
		"transport_to_teaching_date", "transport_to_teaching_from", "transport_to_teaching_to",
		"transport_from_teaching_date", "transport_from_teaching_from", "transport_from_teaching_to",
		"transport_type", "transport_destination_from", "transport_destination_to", "transport_reg_number",
		"transport_cubic_capacity", "transport_amount",
		"thesis_type", "thesis_supervision_rank", "thesis_exam_course_code", "thesis_exam_date",
	}
}

func addClaimRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	return rows.AddRow(
		id, "TEACHING", "PENDING", "lecturer-1", "center-1", nil, time.Now(), time.Now(), nil,
		"CS101", "Introduction to Computing", "2026-03-02", "09:00", "11:30", 2.5,
		nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil,
		nil, nil, nil, nil,
	)
}

func TestClaimRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()

	repo := NewClaimRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, claim_type, status")).
		WithArgs("claim-1").
		WillReturnRows(addClaimRow(sqlmock.NewRows(claimRowColumns()), "claim-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, claim_id, student_name, thesis_title FROM supervised_students")).
		WithArgs("claim-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "claim_id", "student_name", "thesis_title"}))

	claim, err := repo.GetByID(context.Background(), "claim-1")
	require.NoError(t, err)
	require.Equal(t, "claim-1", claim.ID)
	require.Equal(t, models.ClaimTypeTeaching, claim.ClaimType)
	require.NotNil(t, claim.TeachingHours)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()

	repo := NewClaimRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, claim_type, status")).
		WithArgs("PENDING", "TEACHING", "center-1").
		WillReturnRows(addClaimRow(sqlmock.NewRows(claimRowColumns()), "claim-1"))

	list, err := repo.List(context.Background(), models.ClaimFilter{
		Status:    []models.ClaimStatus{models.ClaimStatusPending},
		ClaimType: models.ClaimTypeTeaching,
		CenterID:  "center-1",
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "claim-1", list[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepositoryUpdateStatusOptimistic(t *testing.T) {
	db, mock, cleanup := newClaimRepoMock(t)
	defer cleanup()

	repo := NewClaimRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE claims SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	err := repo.UpdateStatus(context.Background(), DecideClaimParams{
		ID:          "claim-1",
		Status:      models.ClaimStatusApproved,
		ProcessedBy: "coord-1",
		ProcessedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// a concurrent decision already consumed the pending row
	mock.ExpectExec(regexp.QuoteMeta("UPDATE claims SET")).WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateStatus(context.Background(), DecideClaimParams{
		ID:          "claim-1",
		Status:      models.ClaimStatusRejected,
		ProcessedBy: "coord-2",
		ProcessedAt: now,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
}
