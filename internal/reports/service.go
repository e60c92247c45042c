package reports

import (
	"context"
	"fmt"
	"time"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ReportService interface {
	ListReports(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Report], error)
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, req *models.UpdateReportStatusRequest) (*models.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error

	ListSafetyReports(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.SafetyReport], error)
	GetSafetyReport(ctx context.Context, id uuid.UUID) (*models.SafetyReport, error)
	UpdateSafetyReportStatus(ctx context.Context, id uuid.UUID, req *models.UpdateReportStatusRequest) (*models.SafetyReport, error)
	DeleteSafetyReport(ctx context.Context, id uuid.UUID) error

	Counts(ctx context.Context) (*Counts, error)
}

// Counts regroupe les signalements en attente de traitement
type Counts struct {
	PendingReports    int64
	OpenSafetyReports int64
}

type reportService struct {
	reports Repository[models.Report]
	safety  Repository[models.SafetyReport]
	tracer  trace.Tracer
	now     func() time.Time
}

func NewReportService(reports Repository[models.Report], safety Repository[models.SafetyReport]) ReportService {
	return &reportService{
		reports: reports,
		safety:  safety,
		tracer:  otel.Tracer("dating-admin/reports"),
		now:     time.Now,
	}
}

func (s *reportService) ListReports(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.Report], error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.ListReports")
	defer span.End()

	page, err := s.reports.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("ReportService.ListReports: Failed to list reports")
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return page, nil
}

func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.GetReport")
	defer span.End()

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}
	return report, nil
}

func (s *reportService) UpdateReportStatus(ctx context.Context, id uuid.UUID, req *models.UpdateReportStatusRequest) (*models.Report, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.UpdateReportStatus")
	defer span.End()
	span.SetAttributes(attribute.String("report.id", id.String()), attribute.String("report.status", string(req.Status)))

	return updateStatus(ctx, span, s.reports, models.ReportListRules, "report", id, req, s.now())
}

func (s *reportService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "ReportService.DeleteReport")
	defer span.End()

	logutils.Log.Infof("ReportService.DeleteReport: Deleting report %s", id)

	if err := s.reports.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	return nil
}

func (s *reportService) ListSafetyReports(ctx context.Context, query models.ListQuery) (*models.ListResponse[models.SafetyReport], error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.ListSafetyReports")
	defer span.End()

	page, err := s.safety.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Error("ReportService.ListSafetyReports: Failed to list safety reports")
		return nil, fmt.Errorf("failed to list safety reports: %w", err)
	}
	return page, nil
}

func (s *reportService) GetSafetyReport(ctx context.Context, id uuid.UUID) (*models.SafetyReport, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.GetSafetyReport")
	defer span.End()

	report, err := s.safety.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get safety report %s: %w", id, err)
	}
	return report, nil
}

func (s *reportService) UpdateSafetyReportStatus(ctx context.Context, id uuid.UUID, req *models.UpdateReportStatusRequest) (*models.SafetyReport, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.UpdateSafetyReportStatus")
	defer span.End()
	span.SetAttributes(attribute.String("safety_report.id", id.String()), attribute.String("safety_report.status", string(req.Status)))

	return updateStatus(ctx, span, s.safety, models.SafetyReportListRules, "safety report", id, req, s.now())
}

func (s *reportService) DeleteSafetyReport(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "ReportService.DeleteSafetyReport")
	defer span.End()

	logutils.Log.Infof("ReportService.DeleteSafetyReport: Deleting safety report %s", id)

	if err := s.safety.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete safety report %s: %w", id, err)
	}
	return nil
}

func (s *reportService) Counts(ctx context.Context) (*Counts, error) {
	ctx, span := s.tracer.Start(ctx, "ReportService.Counts")
	defer span.End()

	pending, err := s.reports.CountByStatus(ctx, models.ReportPending, models.ReportReviewing)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	open, err := s.safety.CountByStatus(ctx, models.ReportPending, models.ReportInvestigating)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count safety reports: %w", err)
	}

	return &Counts{PendingReports: pending, OpenSafetyReports: open}, nil
}

// updateStatus valide le statut cible puis l'applique; un statut final horodate resolved_at
func updateStatus[T any](ctx context.Context, span trace.Span, repo Repository[T], rules models.ListRules,
	resource string, id uuid.UUID, req *models.UpdateReportStatusRequest, now time.Time) (*T, error) {

	if req.Status == "" || !rules.AllowsStatus(string(req.Status)) {
		err := domain.Invalid(fmt.Sprintf("unknown %s status %q", resource, req.Status), nil)
		span.RecordError(err)
		return nil, err
	}

	var resolvedAt *time.Time
	if req.Status.IsClosed() {
		resolvedAt = &now
	}

	var note *string
	if req.AdminNote != "" {
		note = &req.AdminNote
	}

	logutils.Log.Infof("ReportService: Setting %s %s to %s", resource, id, req.Status)

	record, err := repo.UpdateStatus(ctx, id, req.Status, note, resolvedAt)
	if err != nil {
		span.RecordError(err)
		logutils.Log.WithError(err).Errorf("ReportService: Failed to update %s %s", resource, id)
		return nil, fmt.Errorf("failed to update %s %s: %w", resource, id, err)
	}
	return record, nil
}
