// Copyright (c) 2026 ScholarHub. All rights reserved.

package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scholarhub/api/internal/platform/database/schema"
	"github.com/scholarhub/api/internal/platform/dberr"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/pkg/pagination"
	"github.com/scholarhub/api/pkg/uuidv7"
)

// accountColumns is the full hydration column list for single-row lookups,
// derived from the schema definition so store and DDL cannot drift apart.
var accountColumns = strings.Join([]string{
	schema.PortalAccount.ID, schema.PortalAccount.FacultyID,
	schema.PortalAccount.FullName, schema.PortalAccount.Email,
	schema.PortalAccount.Password, schema.PortalAccount.Role,
	schema.PortalAccount.College, schema.PortalAccount.Institute,
	schema.PortalAccount.Department, schema.PortalAccount.IsActive,
	schema.PortalAccount.CreatedAt, schema.PortalAccount.UpdatedAt,
}, ", ")

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed user store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// appendFilter writes the WHERE fragments for a [Filter] into the query
// builder, returning the updated positional argument list.
//
// Search is a case-insensitive substring match OR-ed across the account's
// designated text fields (full name, email, faculty ID).
func appendFilter(queryBuilder *strings.Builder, filter Filter, args []any) []any {
	argID := len(args) + 1

	if filter.Role != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND role = $%d", argID))
		args = append(args, filter.Role)
		argID++
	}

	if filter.ExcludeSuperAdmins {
		queryBuilder.WriteString(fmt.Sprintf(" AND role <> $%d", argID))
		args = append(args, string(sec.RoleSuperAdmin))
		argID++
	}

	if filter.College != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND college = $%d", argID))
		args = append(args, filter.College)
		argID++
	}

	if filter.Institute != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND institute = $%d", argID))
		args = append(args, filter.Institute)
		argID++
	}

	if filter.Department != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND department = $%d", argID))
		args = append(args, filter.Department)
		argID++
	}

	if filter.IsActive != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND isactive = $%d", argID))
		args = append(args, *filter.IsActive)
		argID++
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (fullname ILIKE $%d OR email ILIKE $%d OR facultyid ILIKE $%d)",
			argID, argID, argID,
		))
		args = append(args, "%"+filter.Search+"%")
	}

	return args
}

// # Account Retrieval

/*
List returns a filtered, sorted, and paginated list of accounts.

Description: Uses ILIKE for text search and COUNT(*) OVER() for total metadata.
The ORDER BY fragment is safe because sort fields are validated against
[AllowedSortFields] before reaching the store.

Parameters:
  - context: context.Context
  - filter: Filter
  - sort: pagination.Sort
  - limit: int
  - offset: int

Returns:
  - []*User: Slice of matching accounts
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, sort pagination.Sort, limit, offset int) ([]*User, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, facultyid, fullname, email, role, college, institute,
			department, isactive, createdat, updatedat,
			COUNT(*) OVER() as total
		FROM portal.account
		WHERE deletedat IS NULL
	`)

	args := appendFilter(&queryBuilder, filter, []any{})
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", sort.OrderBy(), argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var accounts []*User
	var total int
	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID, &user.FacultyID, &user.FullName, &user.Email, &user.Role,
			&user.College, &user.Institute, &user.Department, &user.IsActive,
			&user.CreatedAt, &user.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		accounts = append(accounts, user)
	}

	return accounts, total, nil
}

/*
ListAll returns every account matching the filter, unpaginated, for the
statistics aggregator.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*User: Every matching account
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAll(context context.Context, filter Filter) ([]*User, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, facultyid, fullname, email, role, college, institute,
			department, isactive, createdat, updatedat
		FROM portal.account
		WHERE deletedat IS NULL
	`)

	args := appendFilter(&queryBuilder, filter, []any{})

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_all_users")
	}
	defer rows.Close()

	var accounts []*User
	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID, &user.FacultyID, &user.FullName, &user.Email, &user.Role,
			&user.College, &user.Institute, &user.Department, &user.IsActive,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		accounts = append(accounts, user)
	}

	return accounts, nil
}

/*
FindByID retrieves a single account by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		accountColumns, schema.PortalAccount.Table,
		schema.PortalAccount.ID, schema.PortalAccount.DeletedAt,
	)
	return repository.scanOne(context, query, id)
}

/*
FindByEmail retrieves a single account by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE lower(%s) = lower($1) AND %s IS NULL`,
		accountColumns, schema.PortalAccount.Table,
		schema.PortalAccount.Email, schema.PortalAccount.DeletedAt,
	)
	return repository.scanOne(context, query, email)
}

func (repository *PostgresRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&user.ID, &user.FacultyID, &user.FullName, &user.Email, &user.Password,
		&user.Role, &user.College, &user.Institute, &user.Department,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}
	return user, nil
}

// # Account Mutation

/*
Create inserts a new account record.

Description: Generates a UUIDv7 primary key when the entity has none.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict on duplicate email/faculty ID, or storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuidv7.New()
	}

	const query = `
		INSERT INTO portal.account
			(id, facultyid, fullname, email, passwordhash, role, college, institute, department, isactive)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		user.ID, user.FacultyID, user.FullName, user.Email, user.Password,
		user.Role, user.College, user.Institute, user.Department, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

/*
Update persists the mutable profile and placement fields.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: dberr.ErrNotFound if the account does not exist
*/
func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE portal.account
		SET facultyid = $2, fullname = $3, email = $4, role = $5,
			college = $6, institute = $7, department = $8, updatedat = now()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query,
		user.ID, user.FacultyID, user.FullName, user.Email, user.Role,
		user.College, user.Institute, user.Department,
	).Scan(&user.UpdatedAt)

	return dberr.Wrap(err, "update_user")
}

/*
SetActive toggles the account's active flag.

Parameters:
  - context: context.Context
  - id: string
  - isActive: bool

Returns:
  - error: dberr.ErrNotFound if the account does not exist
*/
func (repository *PostgresRepository) SetActive(context context.Context, id string, isActive bool) error {
	const query = `
		UPDATE portal.account
		SET isactive = $2, updatedat = now()
		WHERE id = $1 AND deletedat IS NULL
	`
	tag, err := repository.db.Exec(context, query, id, isActive)
	if err != nil {
		return dberr.Wrap(err, "set_user_active")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
SoftDelete marks the account as deleted without physical row removal.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: dberr.ErrNotFound if the account does not exist
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	const query = `
		UPDATE portal.account
		SET deletedat = now()
		WHERE id = $1 AND deletedat IS NULL
	`
	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
