package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepositoryImpl{db: db}
}

const requestColumns = `
	id, type, requester_id, requester_name, requester_department,
	status, current_stage, version, payload, stage_history,
	created_at, updated_at
`

func scanRequest(row pgx.Row) (request.Request, error) {
	var r request.Request
	err := row.Scan(
		&r.ID, &r.Type, &r.RequesterID, &r.RequesterName, &r.RequesterDepartment,
		&r.Status, &r.CurrentStage, &r.Version, &r.Payload, &r.StageHistory,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, type, requester_id, requester_name, requester_department,
			status, current_stage, version, payload, stage_history,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12
		)
		RETURNING ` + requestColumns

	row := q.QueryRow(ctx, query,
		req.ID, req.Type, req.RequesterID, req.RequesterName, req.RequesterDepartment,
		req.Status, req.CurrentStage, req.Version, req.Payload, req.StageHistory,
		req.CreatedAt, req.UpdatedAt,
	)
	return scanRequest(row)
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

// UpdateStatusAndStage applies a stage decision under optimistic locking.
// The row only updates when the stored version matches the expected one, so
// two concurrent approvers cannot both land a decision on the same stage.
func (r *requestRepositoryImpl) UpdateStatusAndStage(ctx context.Context, upd request.StatusUpdate) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE requests
		SET status = $1,
			current_stage = $2,
			version = version + 1,
			stage_history = stage_history || $3::jsonb,
			updated_at = $4
		WHERE id = $5 AND version = $6
		RETURNING ` + requestColumns

	decision := request.StageHistory{upd.Decision}
	row := q.QueryRow(ctx, query,
		upd.Status, upd.CurrentStage, decision, time.Now(),
		upd.ID, upd.ExpectedVersion,
	)

	updated, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a lost race from a missing row.
			if _, getErr := r.GetByID(ctx, upd.ID); getErr != nil {
				return request.Request{}, getErr
			}
			return request.Request{}, request.ErrVersionConflict
		}
		return request.Request{}, err
	}
	return updated, nil
}

func (r *requestRepositoryImpl) ListByRequester(ctx context.Context, requesterID string, status *request.Status) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM requests WHERE requester_id = $1`
	args := []interface{}{requesterID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *requestRepositoryImpl) ListByStage(ctx context.Context, stage int, department *string) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE status = 'pending' AND current_stage = $1
	`
	args := []interface{}{stage}
	if department != nil {
		query += ` AND requester_department = $2`
		args = append(args, *department)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *requestRepositoryImpl) ListApprovedLeaves(ctx context.Context, requesterID, leaveType string, year int) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE requester_id = $1
		  AND type = 'leave'
		  AND status = 'approved'
		  AND payload->'leave'->>'leave_type' = $2
		  AND date_part('year', (payload->'leave'->>'start_date')::date) = $3
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, requesterID, leaveType, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]request.Request, error) {
	var requests []request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
