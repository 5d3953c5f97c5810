package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/mymbrcm/hr-portal-go/internal/domain/attendance"
	"github.com/mymbrcm/hr-portal-go/internal/domain/payroll"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/storage"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Directory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// Summarizer provides the month's attendance aggregate the late penalty is
// computed from.
type Summarizer interface {
	Summary(ctx context.Context, userID, period string) (attendance.MonthlySummary, error)
}

type Service struct {
	logger   *slog.Logger
	payslips payroll.Repository
	users    Directory
	months   Summarizer
	files    storage.FileStorage

	now func() time.Time
}

func NewService(
	logger *slog.Logger,
	payslips payroll.Repository,
	users Directory,
	months Summarizer,
	files storage.FileStorage,
) *Service {
	return &Service{
		logger:   logger,
		payslips: payslips,
		users:    users,
		months:   months,
		files:    files,
		now:      time.Now,
	}
}

// Generate computes and stores the payslip for one user-month, rendering the
// PDF as a side artifact. Regenerating an existing period is rejected.
func (s *Service) Generate(ctx context.Context, userID, period string) (payroll.Payslip, error) {
	if !periodPattern.MatchString(period) {
		return payroll.Payslip{}, payroll.ErrInvalidPeriod
	}

	if _, err := s.payslips.GetByUserAndPeriod(ctx, userID, period); err == nil {
		return payroll.Payslip{}, payroll.ErrPayslipExists
	} else if !errors.Is(err, payroll.ErrPayslipNotFound) {
		return payroll.Payslip{}, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	sum, err := s.months.Summary(ctx, userID, period)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("loading attendance summary: %w", err)
	}

	now := s.now()
	slip := payroll.Payslip{
		ID:            uuid.New().String(),
		UserID:        u.ID,
		Name:          u.FullName(),
		Designation:   u.Designation,
		Department:    u.Department,
		Period:        period,
		BaseSalary:    u.BaseSalary,
		IncomeTax:     MonthlyIncomeTax(u.BaseSalary),
		ProvidentFund: ProvidentFund(u, now),
		LatePenalty:   LatePenalty(u.BaseSalary, sum.LateDays),
		LateDays:      sum.LateDays,
		GeneratedAt:   now,
	}
	slip.NetPay = slip.BaseSalary - slip.IncomeTax - slip.ProvidentFund - slip.LatePenalty

	pdf, err := renderPayslipPDF(slip)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("rendering payslip: %w", err)
	}

	path := fmt.Sprintf("payslips/%s/%s.pdf", period, u.ID)
	stored, err := s.files.Upload(ctx, bytes.NewReader(pdf), path, "application/pdf")
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("storing payslip pdf: %w", err)
	}
	slip.FilePath = stored

	created, err := s.payslips.Create(ctx, slip)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("saving payslip: %w", err)
	}

	s.logger.Info("payslip generated",
		slog.String("user_id", u.ID),
		slog.String("period", period),
		slog.Int("net_pay", created.NetPay),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, userID, period string) (payroll.Payslip, error) {
	if !periodPattern.MatchString(period) {
		return payroll.Payslip{}, payroll.ErrInvalidPeriod
	}
	return s.payslips.GetByUserAndPeriod(ctx, userID, period)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]payroll.Payslip, error) {
	return s.payslips.ListByUser(ctx, userID)
}

func (s *Service) ListForPeriod(ctx context.Context, period string) ([]payroll.Payslip, error) {
	if !periodPattern.MatchString(period) {
		return nil, payroll.ErrInvalidPeriod
	}
	return s.payslips.ListByPeriod(ctx, period)
}

// DownloadPDF streams the stored payslip document.
func (s *Service) DownloadPDF(ctx context.Context, userID, period string) (io.ReadCloser, error) {
	slip, err := s.Get(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	if slip.FilePath == "" {
		return nil, payroll.ErrPayslipNotFound
	}
	return s.files.Download(ctx, slip.FilePath)
}

func renderPayslipPDF(slip payroll.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	row := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(60, 8, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
	}

	row("Employee", slip.Name)
	row("Designation", slip.Designation)
	row("Department", slip.Department)
	row("Period", slip.Period)
	pdf.Ln(4)

	amount := func(v int) string { return fmt.Sprintf("PKR %d", v) }
	row("Base Salary", amount(slip.BaseSalary))
	row("Income Tax", amount(slip.IncomeTax))
	row("Provident Fund", amount(slip.ProvidentFund))
	row(fmt.Sprintf("Late Penalty (%d late days)", slip.LateDays), amount(slip.LatePenalty))

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 10, "Net Pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, amount(slip.NetPay), "1", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
