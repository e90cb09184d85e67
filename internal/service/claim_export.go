package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adinkra-labs/claims-api/internal/models"
	"github.com/adinkra-labs/claims-api/pkg/errors"
	"github.com/adinkra-labs/claims-api/pkg/export"
)

// ExportFormat enumerates supported claim export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type exportClaimLister interface {
	List(ctx context.Context, filter models.ClaimFilter) ([]models.Claim, error)
}

type centerReader interface {
	GetByID(ctx context.Context, id string) (*models.Center, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ClaimExportService renders claim listings as CSV or PDF documents for
// coordinators and registry staff.
type ClaimExportService struct {
	claims  exportClaimLister
	centers centerReader
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewClaimExportService constructs the export service.
func NewClaimExportService(claims exportClaimLister, centers centerReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ClaimExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaimExportService{claims: claims, centers: centers, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the claims visible to the actor in the requested format and
// returns the document bytes together with a filename and content type.
func (s *ClaimExportService) Export(ctx context.Context, format ExportFormat, query models.ClaimFilter, actor *models.JWTClaims) ([]byte, string, string, error) {
	if actor == nil {
		return nil, "", "", errors.ErrUnauthorized
	}
	switch actor.Role {
	case models.RoleRegistry:
	case models.RoleCoordinator:
		if actor.CenterID == nil {
			return nil, "", "", errors.ErrForbidden
		}
		query.CenterID = *actor.CenterID
	default:
		return nil, "", "", errors.ErrForbidden
	}

	claims, err := s.claims.List(ctx, query)
	if err != nil {
		return nil, "", "", errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load claims for export")
	}

	dataset := s.buildDataset(ctx, claims)
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", "", errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to render csv export")
		}
		return data, fmt.Sprintf("claims-%s.csv", stamp), "text/csv", nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Lecturer Claims")
		if err != nil {
			return nil, "", "", errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to render pdf export")
		}
		return data, fmt.Sprintf("claims-%s.pdf", stamp), "application/pdf", nil
	default:
		return nil, "", "", errors.Clone(errors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *ClaimExportService) buildDataset(ctx context.Context, claims []models.Claim) export.Dataset {
	headers := []string{"Claim ID", "Type", "Status", "Center", "Submitted", "Processed", "Detail"}
	rows := make([]map[string]string, 0, len(claims))
	centerNames := map[string]string{}

	for _, claim := range claims {
		name, ok := centerNames[claim.CenterID]
		if !ok {
			name = claim.CenterID
			if s.centers != nil {
				if center, err := s.centers.GetByID(ctx, claim.CenterID); err == nil {
					name = center.Name
				}
			}
			centerNames[claim.CenterID] = name
		}
		processed := ""
		if claim.ProcessedAt != nil {
			processed = claim.ProcessedAt.Format("2006-01-02")
		}
		rows = append(rows, map[string]string{
			"Claim ID":  claim.ID,
			"Type":      string(claim.ClaimType),
			"Status":    string(claim.Status),
			"Center":    name,
			"Submitted": claim.SubmittedAt.Format("2006-01-02"),
			"Processed": processed,
			"Detail":    claimDetail(claim),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// claimDetail summarises the variant-specific content in one column.
func claimDetail(claim models.Claim) string {
	switch claim.ClaimType {
	case models.ClaimTypeTeaching:
		parts := []string{deref(claim.CourseCode)}
		if claim.TeachingHours != nil {
			parts = append(parts, fmt.Sprintf("%.2f hours", *claim.TeachingHours))
		}
		return strings.Join(parts, ", ")
	case models.ClaimTypeTransportation:
		detail := fmt.Sprintf("%s to %s", deref(claim.TransportDestinationFrom), deref(claim.TransportDestinationTo))
		if claim.TransportAmount != nil {
			detail = fmt.Sprintf("%s (%.2f)", detail, *claim.TransportAmount)
		}
		return detail
	case models.ClaimTypeThesisProject:
		if claim.ThesisType != nil {
			return string(*claim.ThesisType)
		}
	}
	return ""
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
