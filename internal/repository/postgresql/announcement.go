package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/announcement"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.Repository {
	return &announcementRepositoryImpl{db: db}
}

func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (id, author_id, author_name, title, body, department, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, author_id, author_name, title, body, department, created_at
	`

	var created announcement.Announcement
	err := q.QueryRow(ctx, query,
		a.ID, a.AuthorID, a.AuthorName, a.Title, a.Body, a.Department, a.CreatedAt,
	).Scan(
		&created.ID, &created.AuthorID, &created.AuthorName,
		&created.Title, &created.Body, &created.Department, &created.CreatedAt,
	)
	if err != nil {
		return announcement.Announcement{}, err
	}
	return created, nil
}

func (r *announcementRepositoryImpl) List(ctx context.Context, department string, limit, offset int) ([]announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, author_id, author_name, title, body, department, created_at
		FROM announcements
		WHERE department = '' OR department = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, department, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []announcement.Announcement
	for rows.Next() {
		var a announcement.Announcement
		if err := rows.Scan(
			&a.ID, &a.AuthorID, &a.AuthorName,
			&a.Title, &a.Body, &a.Department, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *announcementRepositoryImpl) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	var a announcement.Announcement
	err := q.QueryRow(ctx,
		`SELECT id, author_id, author_name, title, body, department, created_at FROM announcements WHERE id = $1`,
		id,
	).Scan(
		&a.ID, &a.AuthorID, &a.AuthorName,
		&a.Title, &a.Body, &a.Department, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, err
	}
	return a, nil
}

func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return announcement.ErrAnnouncementNotFound
	}
	return nil
}
