package postgresql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	id, first_name, last_name, email, gender,
	role, department, designation, shift,
	joining_date, status, base_salary, pf_status,
	phone, address, bank_name, account_number, iban,
	daily_claim_target, revenue_target, has_edited_profile,
	password_hash, created_at, updated_at
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Gender,
		&u.Role, &u.Department, &u.Designation, &u.Shift,
		&u.JoiningDate, &u.Status, &u.BaseSalary, &u.PFStatus,
		&u.Phone, &u.Address, &u.BankName, &u.AccountNumber, &u.IBAN,
		&u.DailyClaimTarget, &u.RevenueTarget, &u.HasEditedProfile,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, first_name, last_name, email, gender,
			role, department, designation, shift,
			joining_date, status, base_salary, pf_status,
			phone, address, bank_name, account_number, iban,
			daily_claim_target, revenue_target, has_edited_profile,
			password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17, $18,
			$19, $20, $21,
			$22, $23, $24
		)
		RETURNING ` + userColumns

	row := q.QueryRow(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.Gender,
		u.Role, u.Department, u.Designation, u.Shift,
		u.JoiningDate, u.Status, u.BaseSalary, u.PFStatus,
		u.Phone, u.Address, u.BankName, u.AccountNumber, u.IBAN,
		u.DailyClaimTarget, u.RevenueTarget, u.HasEditedProfile,
		u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// FindByRoles returns active users holding any of the given roles. A nil
// department widens the search organization-wide.
func (r *userRepositoryImpl) FindByRoles(ctx context.Context, roles []string, department *string) ([]user.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = ANY($1) AND status = 'Active'
	`
	args := []interface{}{roles}
	if department != nil {
		query += ` AND department = $2`
		args = append(args, *department)
	}
	query += ` ORDER BY joining_date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepositoryImpl) List(ctx context.Context, department *string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users`
	var args []interface{}
	if department != nil {
		query += ` WHERE department = $1`
		args = append(args, *department)
	}
	query += ` ORDER BY first_name, last_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"has_edited_profile = TRUE", "updated_at = $1"}
	args := []interface{}{time.Now()}
	idx := 2

	if req.Phone != nil {
		sets = append(sets, "phone = $"+strconv.Itoa(idx))
		args = append(args, *req.Phone)
		idx++
	}
	if req.Address != nil {
		sets = append(sets, "address = $"+strconv.Itoa(idx))
		args = append(args, *req.Address)
		idx++
	}

	args = append(args, req.ID)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(idx)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) UpdateBankDetails(ctx context.Context, req user.UpdateBankDetailsRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}
	idx := 2

	if req.BankName != nil {
		sets = append(sets, "bank_name = $"+strconv.Itoa(idx))
		args = append(args, *req.BankName)
		idx++
	}
	if req.AccountNumber != nil {
		sets = append(sets, "account_number = $"+strconv.Itoa(idx))
		args = append(args, *req.AccountNumber)
		idx++
	}
	if req.IBAN != nil {
		sets = append(sets, "iban = $"+strconv.Itoa(idx))
		args = append(args, *req.IBAN)
		idx++
	}

	args = append(args, req.ID)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(idx)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) UpdateAssignment(ctx context.Context, req user.UpdateAssignmentRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}
	idx := 2

	add := func(column string, value interface{}) {
		sets = append(sets, column+" = $"+strconv.Itoa(idx))
		args = append(args, value)
		idx++
	}

	if req.Role != nil {
		add("role", *req.Role)
	}
	if req.Department != nil {
		add("department", *req.Department)
	}
	if req.Designation != nil {
		add("designation", *req.Designation)
	}
	if req.Shift != nil {
		add("shift", *req.Shift)
	}
	if req.BaseSalary != nil {
		add("base_salary", *req.BaseSalary)
	}
	if req.PFStatus != nil {
		add("pf_status", *req.PFStatus)
	}
	if req.DailyClaimTarget != nil {
		add("daily_claim_target", *req.DailyClaimTarget)
	}
	if req.RevenueTarget != nil {
		add("revenue_target", *req.RevenueTarget)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	args = append(args, req.ID)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $` + strconv.Itoa(idx)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
