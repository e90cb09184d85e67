package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adinkra-labs/claims-api/internal/dto"
	"github.com/adinkra-labs/claims-api/internal/models"
)

const claimDateLayout = "2006-01-02"

// FieldGroup is a set of fields that must be all present or all absent
// together, such as a transport leg triad.
type FieldGroup struct {
	Name   string
	Fields []string
}

// FieldRequirements declares, per claim type and sub-type, which fields are
// required and which optional groups exist. Pure data, no side effects.
type FieldRequirements struct {
	Required []string
	Optional []string
	Groups   []FieldGroup
}

var (
	teachingRequirements = FieldRequirements{
		Required: []string{"courseCode", "courseTitle", "teachingDate", "teachingStartTime", "teachingEndTime"},
		Optional: []string{"teachingHours"},
		Groups: []FieldGroup{
			{Name: "outbound transport leg", Fields: []string{"transportToTeachingDate", "transportToTeachingFrom", "transportToTeachingTo"}},
			{Name: "return transport leg", Fields: []string{"transportFromTeachingDate", "transportFromTeachingFrom", "transportFromTeachingTo"}},
		},
	}

	transportationRequirements = FieldRequirements{
		Required: []string{"transportType", "transportDestinationFrom", "transportDestinationTo"},
		Optional: []string{"transportRegNumber", "transportCubicCapacity", "transportAmount"},
	}

	thesisRequirements = FieldRequirements{
		Required: []string{"thesisType"},
	}

	supervisionRequirements = FieldRequirements{
		Required: []string{"thesisType", "thesisSupervisionRank"},
		Optional: []string{"supervisedStudents"},
	}

	examinationRequirements = FieldRequirements{
		Required: []string{"thesisType", "thesisExamCourseCode"},
		Optional: []string{"thesisExamDate"},
	}
)

// RequirementsFor returns the field requirements for the given claim type and,
// for thesis claims, sub-type. Unknown combinations are a programming error
// and yield the empty requirement set.
func RequirementsFor(claimType models.ClaimType, thesisType models.ThesisType) FieldRequirements {
	switch claimType {
	case models.ClaimTypeTeaching:
		return teachingRequirements
	case models.ClaimTypeTransportation:
		return transportationRequirements
	case models.ClaimTypeThesisProject:
		switch thesisType {
		case models.ThesisTypeSupervision:
			return supervisionRequirements
		case models.ThesisTypeExamination:
			return examinationRequirements
		default:
			return thesisRequirements
		}
	}
	return FieldRequirements{}
}

// payloadFields flattens the scalar submission fields into a map keyed by
// payload path so the rule combinators can address them by name.
func payloadFields(req dto.SubmitClaimRequest) map[string]string {
	return map[string]string{
		"courseCode":                req.CourseCode,
		"courseTitle":               req.CourseTitle,
		"teachingDate":              req.TeachingDate,
		"teachingStartTime":         req.TeachingStartTime,
		"teachingEndTime":           req.TeachingEndTime,
		"teachingHours":             req.TeachingHours,
		"transportToTeachingDate":   req.TransportToTeachingDate,
		"transportToTeachingFrom":   req.TransportToTeachingFrom,
		"transportToTeachingTo":     req.TransportToTeachingTo,
		"transportFromTeachingDate": req.TransportFromTeachingDate,
		"transportFromTeachingFrom": req.TransportFromTeachingFrom,
		"transportFromTeachingTo":   req.TransportFromTeachingTo,
		"transportType":             req.TransportType,
		"transportDestinationFrom":  req.TransportDestinationFrom,
		"transportDestinationTo":    req.TransportDestinationTo,
		"transportRegNumber":        req.TransportRegNumber,
		"transportCubicCapacity":    req.TransportCubicCapacity,
		"transportAmount":           req.TransportAmount,
		"thesisType":                req.ThesisType,
		"thesisSupervisionRank":     req.ThesisSupervisionRank,
		"thesisExamCourseCode":      req.ThesisExamCourseCode,
		"thesisExamDate":            req.ThesisExamDate,
	}
}

// violationList accumulates field-scoped violations in emission order.
type violationList []models.Violation

func (v *violationList) add(path, message string) {
	*v = append(*v, models.Violation{Path: path, Message: message})
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// requireNonBlank emits a MissingRequiredField violation when the field is
// absent or blank.
func (v *violationList) requireNonBlank(fields map[string]string, path string) {
	if blank(fields[path]) {
		v.add(path, fmt.Sprintf("%s is required", path))
	}
}

// requireGroup enforces the all-or-nothing rule: when 1 or 2 of the group's
// members are present it emits a violation on each missing member. Zero or
// all present is fine.
func (v *violationList) requireGroup(fields map[string]string, group FieldGroup) {
	present := 0
	for _, field := range group.Fields {
		if !blank(fields[field]) {
			present++
		}
	}
	if present == 0 || present == len(group.Fields) {
		return
	}
	for _, field := range group.Fields {
		if blank(fields[field]) {
			v.add(field, fmt.Sprintf("%s is required to complete the %s", field, group.Name))
		}
	}
}

// requirePositiveInt validates a raw numeric string as a positive integer.
// Blank values count as "not provided" and pass.
func (v *violationList) requirePositiveInt(fields map[string]string, path string) {
	raw := strings.TrimSpace(fields[path])
	if raw == "" {
		return
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		v.add(path, fmt.Sprintf("%s must be a positive whole number", path))
	}
}

// requirePositiveFloat validates a raw numeric string as a positive number.
func (v *violationList) requirePositiveFloat(fields map[string]string, path string) {
	raw := strings.TrimSpace(fields[path])
	if raw == "" {
		return
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		v.add(path, fmt.Sprintf("%s must be a positive number", path))
	}
}

// requireDate validates a non-blank value as an ISO calendar date.
func (v *violationList) requireDate(fields map[string]string, path string) {
	raw := strings.TrimSpace(fields[path])
	if raw == "" {
		return
	}
	if _, err := time.Parse(claimDateLayout, raw); err != nil {
		v.add(path, fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", path))
	}
}

// requireClockTime validates a non-blank value as a HH:MM time of day.
func (v *violationList) requireClockTime(fields map[string]string, path string) {
	raw := strings.TrimSpace(fields[path])
	if raw == "" {
		return
	}
	if _, ok := parseClockTime(raw); !ok {
		v.add(path, fmt.Sprintf("%s must be a valid time (HH:MM)", path))
	}
}

// ValidateSubmission applies the full rule set for the declared claim type and
// returns every violation found. Malformed input never panics or errors; the
// submission is valid iff the returned list is empty. Only a missing or
// unknown claimType short-circuits, since nothing else is checkable then.
func ValidateSubmission(req dto.SubmitClaimRequest) []models.Violation {
	var out violationList

	claimType := models.ClaimType(strings.TrimSpace(req.ClaimType))
	switch claimType {
	case "":
		out.add("claimType", "claimType is required")
		return out
	case models.ClaimTypeTeaching, models.ClaimTypeTransportation, models.ClaimTypeThesisProject:
	default:
		out.add("claimType", "claimType must be one of TEACHING, TRANSPORTATION, THESIS_PROJECT")
		return out
	}

	fields := payloadFields(req)

	switch claimType {
	case models.ClaimTypeTeaching:
		validateTeaching(&out, fields)
	case models.ClaimTypeTransportation:
		validateTransportation(&out, fields)
	case models.ClaimTypeThesisProject:
		validateThesisProject(&out, fields, req.SupervisedStudents)
	}

	return out
}

func validateTeaching(out *violationList, fields map[string]string) {
	reqs := RequirementsFor(models.ClaimTypeTeaching, "")
	for _, field := range reqs.Required {
		out.requireNonBlank(fields, field)
	}
	out.requireDate(fields, "teachingDate")
	out.requireClockTime(fields, "teachingStartTime")
	out.requireClockTime(fields, "teachingEndTime")

	start, startOK := parseClockTime(fields["teachingStartTime"])
	end, endOK := parseClockTime(fields["teachingEndTime"])
	if startOK && endOK && start >= end {
		out.add("teachingEndTime", "teachingEndTime must be after teachingStartTime")
	}

	for _, group := range reqs.Groups {
		out.requireGroup(fields, group)
		out.requireDate(fields, group.Fields[0])
	}

	out.requirePositiveFloat(fields, "teachingHours")
}

func validateTransportation(out *violationList, fields map[string]string) {
	reqs := RequirementsFor(models.ClaimTypeTransportation, "")
	for _, field := range reqs.Required {
		out.requireNonBlank(fields, field)
	}

	transportType := models.TransportType(strings.TrimSpace(fields["transportType"]))
	switch transportType {
	case "", models.TransportTypePublic:
	case models.TransportTypePrivate:
		out.requireNonBlank(fields, "transportRegNumber")
	default:
		out.add("transportType", "transportType must be one of PUBLIC, PRIVATE")
	}

	out.requirePositiveInt(fields, "transportCubicCapacity")
	out.requirePositiveFloat(fields, "transportAmount")
}

func validateThesisProject(out *violationList, fields map[string]string, students []dto.SupervisedStudentEntry) {
	out.requireNonBlank(fields, "thesisType")

	thesisType := models.ThesisType(strings.TrimSpace(fields["thesisType"]))
	switch thesisType {
	case "":
		return
	case models.ThesisTypeSupervision:
		out.requireNonBlank(fields, "thesisSupervisionRank")
		rank := models.SupervisionRank(strings.TrimSpace(fields["thesisSupervisionRank"]))
		switch rank {
		case "", models.SupervisionRankPrincipal, models.SupervisionRankCoSupervisor:
		default:
			out.add("thesisSupervisionRank", "thesisSupervisionRank must be one of PRINCIPAL, CO_SUPERVISOR")
		}
		validateSupervisedStudents(out, students)
	case models.ThesisTypeExamination:
		out.requireNonBlank(fields, "thesisExamCourseCode")
		out.requireDate(fields, "thesisExamDate")
	default:
		out.add("thesisType", "thesisType must be one of SUPERVISION, EXAMINATION")
	}
}

// validateSupervisedStudents enforces the paired-entry rule: each row is
// either fully blank (dropped later by the normalizer) or fully filled.
func validateSupervisedStudents(out *violationList, students []dto.SupervisedStudentEntry) {
	for i, entry := range students {
		nameBlank := blank(entry.StudentName)
		titleBlank := blank(entry.ThesisTitle)
		if nameBlank == titleBlank {
			continue
		}
		if nameBlank {
			out.add(fmt.Sprintf("supervisedStudents[%d].studentName", i), "studentName is required when thesisTitle is provided")
		} else {
			out.add(fmt.Sprintf("supervisedStudents[%d].thesisTitle", i), "thesisTitle is required when studentName is provided")
		}
	}
}
