package dto

import "github.com/adinkra-labs/claims-api/internal/models"

// SubmitClaimRequest is the raw claim submission payload. Every field arrives
// as a string so the validation engine can report type problems as field
// violations instead of bind failures; the normalizer performs the coercions
// once the payload is known to be valid.
type SubmitClaimRequest struct {
	ClaimType string `json:"claimType"`

	CourseCode        string `json:"courseCode"`
	CourseTitle       string `json:"courseTitle"`
	TeachingDate      string `json:"teachingDate"`
	TeachingStartTime string `json:"teachingStartTime"`
	TeachingEndTime   string `json:"teachingEndTime"`
	TeachingHours     string `json:"teachingHours"`

	TransportToTeachingDate   string `json:"transportToTeachingDate"`
	TransportToTeachingFrom   string `json:"transportToTeachingFrom"`
	TransportToTeachingTo     string `json:"transportToTeachingTo"`
	TransportFromTeachingDate string `json:"transportFromTeachingDate"`
	TransportFromTeachingFrom string `json:"transportFromTeachingFrom"`
	TransportFromTeachingTo   string `json:"transportFromTeachingTo"`

	TransportType            string `json:"transportType"`
	TransportDestinationFrom string `json:"transportDestinationFrom"`
	TransportDestinationTo   string `json:"transportDestinationTo"`
	TransportRegNumber       string `json:"transportRegNumber"`
	TransportCubicCapacity   string `json:"transportCubicCapacity"`
	TransportAmount          string `json:"transportAmount"`

	ThesisType            string `json:"thesisType"`
	ThesisSupervisionRank string `json:"thesisSupervisionRank"`
	ThesisExamCourseCode  string `json:"thesisExamCourseCode"`
	ThesisExamDate        string `json:"thesisExamDate"`

	SupervisedStudents []SupervisedStudentEntry `json:"supervisedStudents"`
}

// SupervisedStudentEntry is one row of the supervised students list.
type SupervisedStudentEntry struct {
	StudentName string `json:"studentName"`
	ThesisTitle string `json:"thesisTitle"`
}

// DecideClaimRequest captures the processor decision on a pending claim.
type DecideClaimRequest struct {
	Status models.ClaimStatus `json:"status" validate:"required"`
	Note   string             `json:"note"`
}

// ClaimQuery mirrors supported listing filters.
type ClaimQuery struct {
	Status    []models.ClaimStatus
	ClaimType models.ClaimType
	CenterID  string
	Limit     int
	Offset    int
}
