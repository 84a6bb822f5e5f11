package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/reports/domain/report"
)

// ListReportsQuery fetches all stored weekly reports for a user.
type ListReportsQuery struct {
	UserID uuid.UUID
}

// ListReportsHandler handles the ListReportsQuery.
type ListReportsHandler struct {
	reportRepo report.Repository
}

// NewListReportsHandler creates a new ListReportsHandler.
func NewListReportsHandler(reportRepo report.Repository) *ListReportsHandler {
	return &ListReportsHandler{reportRepo: reportRepo}
}

// Handle executes the ListReportsQuery, most recent week first.
func (h *ListReportsHandler) Handle(ctx context.Context, q ListReportsQuery) ([]*report.WeeklyReport, error) {
	reports, err := h.reportRepo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
