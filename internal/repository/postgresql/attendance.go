package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/attendance"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, user_id, date, shift, check_in_at, check_out_at,
	status, late_minutes, auto_checked_out, location,
	claims_processed, revenue_collected, shortfall_reason,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.Shift, &rec.CheckInAt, &rec.CheckOutAt,
		&rec.Status, &rec.LateMinutes, &rec.AutoCheckedOut, &rec.Location,
		&rec.ClaimsProcessed, &rec.RevenueCollected, &rec.ShortfallReason,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, user_id, date, shift, check_in_at, check_out_at,
			status, late_minutes, auto_checked_out, location,
			claims_processed, revenue_collected, shortfall_reason,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15
		)
		RETURNING ` + attendanceColumns

	row := q.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.Date, rec.Shift, rec.CheckInAt, rec.CheckOutAt,
		rec.Status, rec.LateMinutes, rec.AutoCheckedOut, rec.Location,
		rec.ClaimsProcessed, rec.RevenueCollected, rec.ShortfallReason,
		rec.CreatedAt, rec.UpdatedAt,
	)
	return scanAttendance(row)
}

func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID, date string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE user_id = $1 AND date = $2`
	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_at = $1,
			status = $2,
			late_minutes = $3,
			auto_checked_out = $4,
			claims_processed = $5,
			revenue_collected = $6,
			shortfall_reason = $7,
			updated_at = $8
		WHERE id = $9
	`

	tag, err := q.Exec(ctx, query,
		rec.CheckOutAt, rec.Status, rec.LateMinutes, rec.AutoCheckedOut,
		rec.ClaimsProcessed, rec.RevenueCollected, rec.ShortfallReason, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) ListByUserAndPeriod(ctx context.Context, userID, period string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1 AND date LIKE $2 || '-%'
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, userID, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func (r *attendanceRepositoryImpl) ListOpen(ctx context.Context, date string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date = $1 AND check_out_at IS NULL
		ORDER BY check_in_at ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
