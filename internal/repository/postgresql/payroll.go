package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mymbrcm/hr-portal-go/internal/domain/payroll"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepositoryImpl{db: db}
}

const payslipColumns = `
	id, user_id, name, designation, department, period,
	base_salary, income_tax, provident_fund, late_penalty, net_pay,
	late_days, file_path, generated_at
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Designation, &p.Department, &p.Period,
		&p.BaseSalary, &p.IncomeTax, &p.ProvidentFund, &p.LatePenalty, &p.NetPay,
		&p.LateDays, &p.FilePath, &p.GeneratedAt,
	)
	return p, err
}

func (r *payrollRepositoryImpl) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, user_id, name, designation, department, period,
			base_salary, income_tax, provident_fund, late_penalty, net_pay,
			late_days, file_path, generated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14
		)
		RETURNING ` + payslipColumns

	row := q.QueryRow(ctx, query,
		p.ID, p.UserID, p.Name, p.Designation, p.Department, p.Period,
		p.BaseSalary, p.IncomeTax, p.ProvidentFund, p.LatePenalty, p.NetPay,
		p.LateDays, p.FilePath, p.GeneratedAt,
	)

	created, err := scanPayslip(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payslip{}, payroll.ErrPayslipExists
		}
		return payroll.Payslip{}, err
	}
	return created, nil
}

func (r *payrollRepositoryImpl) GetByUserAndPeriod(ctx context.Context, userID, period string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE user_id = $1 AND period = $2`
	p, err := scanPayslip(q.QueryRow(ctx, query, userID, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, err
	}
	return p, nil
}

func (r *payrollRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE user_id = $1 ORDER BY period DESC`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func (r *payrollRepositoryImpl) ListByPeriod(ctx context.Context, period string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE period = $1 ORDER BY department, name`
	rows, err := q.Query(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayslips(rows)
}

func collectPayslips(rows pgx.Rows) ([]payroll.Payslip, error) {
	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}
