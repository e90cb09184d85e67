package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adinkra-labs/claims-api/internal/models"
)

const claimColumns = `id, claim_type, status, submitted_by, center_id, processed_by, submitted_at, updated_at, processed_at,
       course_code, course_title, teaching_date, teaching_start_time, teaching_end_time, teaching_hours,
       transport_to_teaching_date, transport_to_teaching_from, transport_to_teaching_to,
       transport_from_teaching_date, transport_from_teaching_from, transport_from_teaching_to,
       transport_type, transport_destination_from, transport_destination_to, transport_reg_number,
       transport_cubic_capacity, transport_amount,
       thesis_type, thesis_supervision_rank, thesis_exam_course_code, thesis_exam_date`

// ClaimRepository persists claim aggregates and their supervised students.
type ClaimRepository struct {
	db *sqlx.DB
}

// NewClaimRepository constructs the repository.
func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Create inserts the claim and its supervised student rows in one
// transaction. Partial writes are never visible.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if claim.ID == "" {
		claim.ID = uuid.NewString()
	}
	if claim.Status == "" {
		claim.Status = models.ClaimStatusPending
	}
	now := time.Now().UTC()
	if claim.SubmittedAt.IsZero() {
		claim.SubmittedAt = now
	}
	if claim.UpdatedAt.IsZero() {
		claim.UpdatedAt = claim.SubmittedAt
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin claim tx: %w", err)
	}

	const insertClaim = `INSERT INTO claims
	(id, claim_type, status, submitted_by, center_id, processed_by, submitted_at, updated_at, processed_at,
	 course_code, course_title, teaching_date, teaching_start_time, teaching_end_time, teaching_hours,
	 transport_to_teaching_date, transport_to_teaching_from, transport_to_teaching_to,
	 transport_from_teaching_date, transport_from_teaching_from, transport_from_teaching_to,
	 transport_type, transport_destination_from, transport_destination_to, transport_reg_number,
	 transport_cubic_capacity, transport_amount,
	 thesis_type, thesis_supervision_rank, thesis_exam_course_code, thesis_exam_date)
	VALUES (:id, :claim_type, :status, :submitted_by, :center_id, :processed_by, :submitted_at, :updated_at, :processed_at,
	 :course_code, :course_title, :teaching_date, :teaching_start_time, :teaching_end_time, :teaching_hours,
	 :transport_to_teaching_date, :transport_to_teaching_from, :transport_to_teaching_to,
	 :transport_from_teaching_date, :transport_from_teaching_from, :transport_from_teaching_to,
	 :transport_type, :transport_destination_from, :transport_destination_to, :transport_reg_number,
	 :transport_cubic_capacity, :transport_amount,
	 :thesis_type, :thesis_supervision_rank, :thesis_exam_course_code, :thesis_exam_date)`
	if _, err := tx.NamedExecContext(ctx, insertClaim, claim); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create claim: %w", err)
	}

	const insertStudent = `INSERT INTO supervised_students (id, claim_id, student_name, thesis_title)
	VALUES (:id, :claim_id, :student_name, :thesis_title)`
	for i := range claim.SupervisedStudents {
		student := &claim.SupervisedStudents[i]
		if student.ID == "" {
			student.ID = uuid.NewString()
		}
		student.ClaimID = claim.ID
		if _, err := tx.NamedExecContext(ctx, insertStudent, student); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create supervised student: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit claim tx: %w", err)
	}
	return nil
}

// GetByID fetches a claim and its supervised students.
func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*models.Claim, error) {
	query := fmt.Sprintf("SELECT %s FROM claims WHERE id = $1", claimColumns)
	var claim models.Claim
	if err := r.db.GetContext(ctx, &claim, query, id); err != nil {
		return nil, err
	}

	const studentQuery = `SELECT id, claim_id, student_name, thesis_title FROM supervised_students WHERE claim_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &claim.SupervisedStudents, studentQuery, id); err != nil {
		return nil, fmt.Errorf("load supervised students: %w", err)
	}
	return &claim, nil
}

// List returns claims matching the filter (latest submissions first).
// Supervised students are not hydrated for listings.
func (r *ClaimRepository) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	builder := strings.Builder{}
	args := make([]interface{}, 0, 6)
	builder.WriteString(fmt.Sprintf("SELECT %s FROM claims", claimColumns))

	conditions := make([]string, 0, 4)
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.ClaimType != "" {
		args = append(args, filter.ClaimType)
		conditions = append(conditions, fmt.Sprintf("claim_type = $%d", len(args)))
	}
	if filter.CenterID != "" {
		args = append(args, filter.CenterID)
		conditions = append(conditions, fmt.Sprintf("center_id = $%d", len(args)))
	}
	if filter.SubmittedBy != "" {
		args = append(args, filter.SubmittedBy)
		conditions = append(conditions, fmt.Sprintf("submitted_by = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY submitted_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	var claims []models.Claim
	if err := r.db.SelectContext(ctx, &claims, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

// DecideClaimParams groups the columns written by a processor decision.
type DecideClaimParams struct {
	ID          string
	Status      models.ClaimStatus
	ProcessedBy string
	ProcessedAt time.Time
}

// UpdateStatus applies a decision under an optimistic check that the claim is
// still pending. It returns sql.ErrNoRows when the claim was already decided,
// so a concurrent second decider observes the conflict instead of silently
// winning.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, params DecideClaimParams) error {
	query := fmt.Sprintf(`UPDATE claims SET status = :status, processed_by = :processed_by, processed_at = :processed_at, updated_at = :processed_at
	WHERE id = :id AND status = '%s'`, models.ClaimStatusPending)
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":           params.ID,
		"status":       params.Status,
		"processed_by": params.ProcessedBy,
		"processed_at": params.ProcessedAt,
	})
	if err != nil {
		return fmt.Errorf("update claim status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check claim update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
