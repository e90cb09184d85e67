package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adinkra-labs/claims-api/internal/models"
	appErrors "github.com/adinkra-labs/claims-api/pkg/errors"
	"github.com/adinkra-labs/claims-api/pkg/export"
)

type exportListerStub struct {
	claims []models.Claim
	filter models.ClaimFilter
}

func (s *exportListerStub) List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error) {
	s.filter = filter
	return s.claims, nil
}

type centerReaderStub struct {
	centers map[string]*models.Center
}

func (s *centerReaderStub) GetByID(ctx context.Context, id string) (*models.Center, error) {
	if center, ok := s.centers[id]; ok {
		return center, nil
	}
	return nil, appErrors.ErrNotFound
}

type renderSpy struct {
	dataset export.Dataset
	title   string
	called  bool
}

func (r *renderSpy) Render(data export.Dataset) ([]byte, error) {
	r.called = true
	r.dataset = data
	return []byte("csv"), nil
}

type pdfRenderSpy struct {
	renderSpy
}

func (r *pdfRenderSpy) Render(data export.Dataset, title string) ([]byte, error) {
	r.called = true
	r.dataset = data
	r.title = title
	return []byte("pdf"), nil
}

func exportFixture() []models.Claim {
	hours := 2.5
	courseCode := "CS101"
	amount := 120.5
	from := "Accra"
	to := "Kumasi"
	return []models.Claim{
		{
			ID:            "claim-1",
			ClaimType:     models.ClaimTypeTeaching,
			Status:        models.ClaimStatusApproved,
			CenterID:      "center-1",
			SubmittedAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			CourseCode:    &courseCode,
			TeachingHours: &hours,
		},
		{
			ID:                       "claim-2",
			ClaimType:                models.ClaimTypeTransportation,
			Status:                   models.ClaimStatusPending,
			CenterID:                 "center-1",
			SubmittedAt:              time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
			TransportDestinationFrom: &from,
			TransportDestinationTo:   &to,
			TransportAmount:          &amount,
		},
	}
}

func TestClaimExportCSV(t *testing.T) {
	lister := &exportListerStub{claims: exportFixture()}
	centers := &centerReaderStub{centers: map[string]*models.Center{
		"center-1": {ID: "center-1", Name: "Winneba Campus"},
	}}
	csv := &renderSpy{}
	svc := NewClaimExportService(lister, centers, csv, &pdfRenderSpy{}, nil)

	registry := &models.JWTClaims{UserID: "registry-1", Role: models.RoleRegistry}
	data, filename, contentType, err := svc.Export(context.Background(), ExportFormatCSV, models.ClaimFilter{}, registry)
	require.NoError(t, err)
	require.Equal(t, []byte("csv"), data)
	require.Contains(t, filename, ".csv")
	require.Equal(t, "text/csv", contentType)

	require.True(t, csv.called)
	require.Len(t, csv.dataset.Rows, 2)
	require.Equal(t, "Winneba Campus", csv.dataset.Rows[0]["Center"])
	require.Equal(t, "CS101, 2.50 hours", csv.dataset.Rows[0]["Detail"])
	require.Equal(t, "Accra to Kumasi (120.50)", csv.dataset.Rows[1]["Detail"])
}

func TestClaimExportPDF(t *testing.T) {
	lister := &exportListerStub{claims: exportFixture()}
	pdf := &pdfRenderSpy{}
	svc := NewClaimExportService(lister, nil, &renderSpy{}, pdf, nil)

	registry := &models.JWTClaims{UserID: "registry-1", Role: models.RoleRegistry}
	data, filename, contentType, err := svc.Export(context.Background(), ExportFormatPDF, models.ClaimFilter{}, registry)
	require.NoError(t, err)
	require.Equal(t, []byte("pdf"), data)
	require.Contains(t, filename, ".pdf")
	require.Equal(t, "application/pdf", contentType)
	require.Equal(t, "Lecturer Claims", pdf.title)
	// no center reader wired: the raw ID stands in for the name
	require.Equal(t, "center-1", pdf.dataset.Rows[0]["Center"])
}

func TestClaimExportCoordinatorScopedToOwnCenter(t *testing.T) {
	lister := &exportListerStub{}
	svc := NewClaimExportService(lister, nil, &renderSpy{}, &pdfRenderSpy{}, nil)

	centerID := "center-1"
	coordinator := &models.JWTClaims{UserID: "coord-1", Role: models.RoleCoordinator, CenterID: &centerID}
	_, _, _, err := svc.Export(context.Background(), ExportFormatCSV, models.ClaimFilter{CenterID: "center-9"}, coordinator)
	require.NoError(t, err)
	require.Equal(t, "center-1", lister.filter.CenterID, "coordinator filter is forced to their own center")
}

func TestClaimExportLecturerForbidden(t *testing.T) {
	svc := NewClaimExportService(&exportListerStub{}, nil, &renderSpy{}, &pdfRenderSpy{}, nil)

	centerID := "center-1"
	lecturer := &models.JWTClaims{UserID: "lecturer-1", Role: models.RoleLecturer, CenterID: &centerID}
	_, _, _, err := svc.Export(context.Background(), ExportFormatCSV, models.ClaimFilter{}, lecturer)
	require.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestClaimExportUnknownFormat(t *testing.T) {
	svc := NewClaimExportService(&exportListerStub{}, nil, &renderSpy{}, &pdfRenderSpy{}, nil)

	registry := &models.JWTClaims{UserID: "registry-1", Role: models.RoleRegistry}
	_, _, _, err := svc.Export(context.Background(), ExportFormat("xlsx"), models.ClaimFilter{}, registry)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
