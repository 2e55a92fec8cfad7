package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"lms/internal/domain/workflow"
)

type Service struct {
	store workflow.StoreAPI
}

func NewService(store workflow.StoreAPI) *Service {
	return &Service{store: store}
}

// DepartmentSummaryPDF renders a summary of the department's leave
// requests, newest first.
func (s *Service) DepartmentSummaryPDF(ctx context.Context, department string, w io.Writer) error {
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	count := 0
	for _, request := range requests {
		if request.Department != department {
			continue
		}
		count++
		pdf.Cell(0, 6, fmt.Sprintf("%s  %s  %s to %s  [%s]",
			request.RequesterName, request.Kind,
			request.FromDate.Format("2006-01-02"), request.ToDate.Format("2006-01-02"),
			request.Status))
		pdf.Ln(6)
		if request.RejectionReason != "" {
			pdf.Cell(0, 6, "    "+request.RejectionReason)
			pdf.Ln(6)
		}
	}
	if count == 0 {
		pdf.Cell(0, 6, "No leave applications found")
		pdf.Ln(6)
	}

	return pdf.Output(w)
}
