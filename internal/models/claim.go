package models

import "time"

// ClaimType enumerates the supported claim categories.
type ClaimType string

const (
	ClaimTypeTeaching       ClaimType = "TEACHING"
	ClaimTypeTransportation ClaimType = "TRANSPORTATION"
	ClaimTypeThesisProject  ClaimType = "THESIS_PROJECT"
)

// ClaimStatus captures workflow states for submitted claims.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDING"
	ClaimStatusApproved ClaimStatus = "APPROVED"
	ClaimStatusRejected ClaimStatus = "REJECTED"
)

// claimTransitions is the full transition table. PENDING is the only
// non-terminal state; APPROVED and REJECTED accept no further decisions.
var claimTransitions = map[ClaimStatus]map[ClaimStatus]struct{}{
	ClaimStatusPending: {
		ClaimStatusApproved: {},
		ClaimStatusRejected: {},
	},
}

// CanTransition reports whether a claim in the current status may move to next.
func (s ClaimStatus) CanTransition(next ClaimStatus) bool {
	allowed, ok := claimTransitions[s]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

// TransportType distinguishes public from private transportation claims.
type TransportType string

const (
	TransportTypePublic  TransportType = "PUBLIC"
	TransportTypePrivate TransportType = "PRIVATE"
)

// ThesisType distinguishes supervision from examination thesis claims.
type ThesisType string

const (
	ThesisTypeSupervision ThesisType = "SUPERVISION"
	ThesisTypeExamination ThesisType = "EXAMINATION"
)

// SupervisionRank enumerates supervision capacities for thesis claims.
type SupervisionRank string

const (
	SupervisionRankPrincipal    SupervisionRank = "PRINCIPAL"
	SupervisionRankCoSupervisor SupervisionRank = "CO_SUPERVISOR"
)

// Claim is the central aggregate: a lecturer's request for teaching,
// transportation, or thesis/project compensation scoped to one center.
// Only the columns of the declared claimType variant are ever populated;
// the submission normalizer guarantees the rest stay NULL.
type Claim struct {
	ID          string      `db:"id" json:"id"`
	ClaimType   ClaimType   `db:"claim_type" json:"claimType"`
	Status      ClaimStatus `db:"status" json:"status"`
	SubmittedBy string      `db:"submitted_by" json:"submittedById"`
	CenterID    string      `db:"center_id" json:"centerId"`
	ProcessedBy *string     `db:"processed_by" json:"processedById,omitempty"`
	SubmittedAt time.Time   `db:"submitted_at" json:"submittedAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
	ProcessedAt *time.Time  `db:"processed_at" json:"processedAt,omitempty"`

	// Teaching variant.
	CourseCode        *string  `db:"course_code" json:"courseCode,omitempty"`
	CourseTitle       *string  `db:"course_title" json:"courseTitle,omitempty"`
	TeachingDate      *string  `db:"teaching_date" json:"teachingDate,omitempty"`
	TeachingStartTime *string  `db:"teaching_start_time" json:"teachingStartTime,omitempty"`
	TeachingEndTime   *string  `db:"teaching_end_time" json:"teachingEndTime,omitempty"`
	TeachingHours     *float64 `db:"teaching_hours" json:"teachingHours,omitempty"`

	// Optional outbound/return transport legs attached to a teaching claim.
	// Each triad is persisted complete or not at all.
	TransportToTeachingDate   *string `db:"transport_to_teaching_date" json:"transportToTeachingDate,omitempty"`
	TransportToTeachingFrom   *string `db:"transport_to_teaching_from" json:"transportToTeachingFrom,omitempty"`
	TransportToTeachingTo     *string `db:"transport_to_teaching_to" json:"transportToTeachingTo,omitempty"`
	TransportFromTeachingDate *string `db:"transport_from_teaching_date" json:"transportFromTeachingDate,omitempty"`
	TransportFromTeachingFrom *string `db:"transport_from_teaching_from" json:"transportFromTeachingFrom,omitempty"`
	TransportFromTeachingTo   *string `db:"transport_from_teaching_to" json:"transportFromTeachingTo,omitempty"`

	// Transportation variant.
	TransportType            *TransportType `db:"transport_type" json:"transportType,omitempty"`
	TransportDestinationFrom *string        `db:"transport_destination_from" json:"transportDestinationFrom,omitempty"`
	TransportDestinationTo   *string        `db:"transport_destination_to" json:"transportDestinationTo,omitempty"`
	TransportRegNumber       *string        `db:"transport_reg_number" json:"transportRegNumber,omitempty"`
	TransportCubicCapacity   *int64         `db:"transport_cubic_capacity" json:"transportCubicCapacity,omitempty"`
	TransportAmount          *float64       `db:"transport_amount" json:"transportAmount,omitempty"`

	// Thesis/project variant.
	ThesisType            *ThesisType      `db:"thesis_type" json:"thesisType,omitempty"`
	ThesisSupervisionRank *SupervisionRank `db:"thesis_supervision_rank" json:"thesisSupervisionRank,omitempty"`
	ThesisExamCourseCode  *string          `db:"thesis_exam_course_code" json:"thesisExamCourseCode,omitempty"`
	ThesisExamDate        *string          `db:"thesis_exam_date" json:"thesisExamDate,omitempty"`

	SupervisedStudents []SupervisedStudent `db:"-" json:"supervisedStudents,omitempty"`
}

// SupervisedStudent is a (name, thesis title) pair attached to a
// SUPERVISION-type thesis claim. Rows are created and deleted with
// their parent claim and never updated independently.
type SupervisedStudent struct {
	ID          string `db:"id" json:"id"`
	ClaimID     string `db:"claim_id" json:"claimId"`
	StudentName string `db:"student_name" json:"studentName"`
	ThesisTitle string `db:"thesis_title" json:"thesisTitle"`
}

// Violation is a single field-scoped validation failure. Path addresses a
// top-level field or an indexed child such as supervisedStudents[0].thesisTitle.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ClaimFilter constrains claim listing queries.
type ClaimFilter struct {
	Status      []ClaimStatus
	ClaimType   ClaimType
	CenterID    string
	SubmittedBy string
	Limit       int
	Offset      int
}
