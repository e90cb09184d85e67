package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/adinkra-labs/claims-api/internal/dto"
	"github.com/adinkra-labs/claims-api/internal/models"
)

// NormalizeSubmission assembles the persistable claim aggregate from a
// payload that already passed ValidateSubmission. Only fields belonging to
// the declared claim type's variant survive; everything else is discarded.
// teachingHours is always recomputed here, never trusted from the client.
func NormalizeSubmission(req dto.SubmitClaimRequest, submitterID, centerID string, now time.Time) *models.Claim {
	claim := &models.Claim{
		ClaimType:   models.ClaimType(strings.TrimSpace(req.ClaimType)),
		Status:      models.ClaimStatusPending,
		SubmittedBy: submitterID,
		CenterID:    centerID,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	switch claim.ClaimType {
	case models.ClaimTypeTeaching:
		normalizeTeaching(claim, req)
	case models.ClaimTypeTransportation:
		normalizeTransportation(claim, req)
	case models.ClaimTypeThesisProject:
		normalizeThesisProject(claim, req)
	}

	return claim
}

func normalizeTeaching(claim *models.Claim, req dto.SubmitClaimRequest) {
	claim.CourseCode = trimmed(req.CourseCode)
	claim.CourseTitle = trimmed(req.CourseTitle)
	claim.TeachingDate = trimmed(req.TeachingDate)
	claim.TeachingStartTime = trimmed(req.TeachingStartTime)
	claim.TeachingEndTime = trimmed(req.TeachingEndTime)
	claim.TeachingHours = ComputeTeachingHours(req.TeachingDate, req.TeachingStartTime, req.TeachingEndTime)

	// A transport leg is kept only when the triad is complete.
	if completeTriad(req.TransportToTeachingDate, req.TransportToTeachingFrom, req.TransportToTeachingTo) {
		claim.TransportToTeachingDate = trimmed(req.TransportToTeachingDate)
		claim.TransportToTeachingFrom = trimmed(req.TransportToTeachingFrom)
		claim.TransportToTeachingTo = trimmed(req.TransportToTeachingTo)
	}
	if completeTriad(req.TransportFromTeachingDate, req.TransportFromTeachingFrom, req.TransportFromTeachingTo) {
		claim.TransportFromTeachingDate = trimmed(req.TransportFromTeachingDate)
		claim.TransportFromTeachingFrom = trimmed(req.TransportFromTeachingFrom)
		claim.TransportFromTeachingTo = trimmed(req.TransportFromTeachingTo)
	}
}

func normalizeTransportation(claim *models.Claim, req dto.SubmitClaimRequest) {
	transportType := models.TransportType(strings.TrimSpace(req.TransportType))
	claim.TransportType = &transportType
	claim.TransportDestinationFrom = trimmed(req.TransportDestinationFrom)
	claim.TransportDestinationTo = trimmed(req.TransportDestinationTo)
	claim.TransportRegNumber = trimmed(req.TransportRegNumber)
	claim.TransportCubicCapacity = parseOptionalInt(req.TransportCubicCapacity)
	claim.TransportAmount = parseOptionalFloat(req.TransportAmount)
}

func normalizeThesisProject(claim *models.Claim, req dto.SubmitClaimRequest) {
	thesisType := models.ThesisType(strings.TrimSpace(req.ThesisType))
	claim.ThesisType = &thesisType

	switch thesisType {
	case models.ThesisTypeSupervision:
		if rank := strings.TrimSpace(req.ThesisSupervisionRank); rank != "" {
			supervisionRank := models.SupervisionRank(rank)
			claim.ThesisSupervisionRank = &supervisionRank
		}
		claim.SupervisedStudents = normalizeSupervisedStudents(req.SupervisedStudents)
	case models.ThesisTypeExamination:
		claim.ThesisExamCourseCode = trimmed(req.ThesisExamCourseCode)
		claim.ThesisExamDate = trimmed(req.ThesisExamDate)
	}
}

// normalizeSupervisedStudents drops rows where both sides are blank and
// returns nil when nothing remains so the key is omitted entirely.
func normalizeSupervisedStudents(entries []dto.SupervisedStudentEntry) []models.SupervisedStudent {
	var students []models.SupervisedStudent
	for _, entry := range entries {
		name := strings.TrimSpace(entry.StudentName)
		title := strings.TrimSpace(entry.ThesisTitle)
		if name == "" && title == "" {
			continue
		}
		students = append(students, models.SupervisedStudent{
			StudentName: name,
			ThesisTitle: title,
		})
	}
	return students
}

func completeTriad(values ...string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}

func trimmed(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	return &value
}

func parseOptionalInt(raw string) *int64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseOptionalFloat(raw string) *float64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
