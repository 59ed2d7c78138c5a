// Copyright (c) 2026 ScholarHub. All rights reserved.

package publication

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scholarhub/api/internal/platform/database/schema"
	"github.com/scholarhub/api/internal/platform/dberr"
	"github.com/scholarhub/api/pkg/pagination"
	"github.com/scholarhub/api/pkg/uuidv7"
)

// publicationColumns is the full hydration column list, derived from the
// schema definition so store and DDL cannot drift apart.
var publicationColumns = strings.Join([]string{
	schema.PortalPublication.ID, schema.PortalPublication.OwnerID,
	schema.PortalPublication.Title, schema.PortalPublication.Journal,
	schema.PortalPublication.Authors, schema.PortalPublication.Year,
	schema.PortalPublication.QRating, schema.PortalPublication.Type,
	schema.PortalPublication.SubjectArea, schema.PortalPublication.SubjectCategory,
	schema.PortalPublication.College, schema.PortalPublication.Institute,
	schema.PortalPublication.Department, schema.PortalPublication.DOI,
	schema.PortalPublication.CreatedAt, schema.PortalPublication.UpdatedAt,
}, ", ")

// PostgresRepository implements [Repository] using pgx.
//
// Authors are stored as a JSONB column so a record stays a single row; the
// free-text search reaches into the array with jsonb_array_elements.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed publication store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// appendFilter writes the WHERE fragments for a [Filter] into the query
// builder, returning the updated positional argument list.
func appendFilter(queryBuilder *strings.Builder, filter Filter, args []any) []any {
	argID := len(args) + 1

	if filter.Year != 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND year = $%d", argID))
		args = append(args, filter.Year)
		argID++
	}

	if len(filter.Years) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND year = ANY($%d)", argID))
		args = append(args, filter.Years)
		argID++
	}

	if filter.QRating != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND qrating = $%d", argID))
		args = append(args, filter.QRating)
		argID++
	}

	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND pubtype = $%d", argID))
		args = append(args, filter.Type)
		argID++
	}

	if filter.SubjectArea != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND subjectarea = $%d", argID))
		args = append(args, filter.SubjectArea)
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

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND ownerid = $%d", argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND (title ILIKE $%d OR journal ILIKE $%d OR EXISTS (
				SELECT 1 FROM jsonb_array_elements(authors) AS author
				WHERE author->>'name' ILIKE $%d
			))`, argID, argID, argID))
		args = append(args, "%"+filter.Search+"%")
	}

	return args
}

// # Publication Retrieval

/*
List returns a filtered, sorted, and paginated list of publication records.

Description: Uses ILIKE for text search across title, journal, and author
names, and COUNT(*) OVER() for total metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - sort: pagination.Sort
  - limit: int
  - offset: int

Returns:
  - []*Publication: Slice of matching records
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, sort pagination.Sort, limit, offset int) ([]*Publication, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, ownerid, title, journal, authors, year, qrating, pubtype,
			subjectarea, subjectcategory, college, institute, department, doi,
			createdat, updatedat,
			COUNT(*) OVER() as total
		FROM portal.publication
		WHERE deletedat IS NULL
	`)

	args := appendFilter(&queryBuilder, filter, []any{})
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", sort.OrderBy(), argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_publications")
	}
	defer rows.Close()

	var records []*Publication
	var total int
	for rows.Next() {
		record, err := scanPublication(rows.Scan, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_publication")
		}
		records = append(records, record)
	}

	return records, total, nil
}

/*
ListAll returns every publication matching the filter, unpaginated, for the
statistics aggregator.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Publication: Every matching record
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAll(context context.Context, filter Filter) ([]*Publication, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, ownerid, title, journal, authors, year, qrating, pubtype,
			subjectarea, subjectcategory, college, institute, department, doi,
			createdat, updatedat
		FROM portal.publication
		WHERE deletedat IS NULL
	`)

	args := appendFilter(&queryBuilder, filter, []any{})

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_all_publications")
	}
	defer rows.Close()

	var records []*Publication
	for rows.Next() {
		record, err := scanPublication(rows.Scan, nil)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_publication")
		}
		records = append(records, record)
	}

	return records, nil
}

/*
FindByID retrieves a single publication by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Publication: Hydrated record
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Publication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		publicationColumns, schema.PortalPublication.Table,
		schema.PortalPublication.ID, schema.PortalPublication.DeletedAt,
	)
	row := repository.db.QueryRow(context, query, id)
	record, err := scanPublication(row.Scan, nil)
	if err != nil {
		return nil, dberr.Wrap(err, "get_publication")
	}
	return record, nil
}

// scanPublication hydrates one row. The total pointer is non-nil only for
// queries that select COUNT(*) OVER().
func scanPublication(scan func(dest ...any) error, total *int) (*Publication, error) {
	record := &Publication{}
	var authorsJSON []byte

	dest := []any{
		&record.ID, &record.OwnerID, &record.Title, &record.Journal, &authorsJSON,
		&record.Year, &record.QRating, &record.Type, &record.SubjectArea,
		&record.SubjectCategory, &record.College, &record.Institute,
		&record.Department, &record.DOI, &record.CreatedAt, &record.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	if len(authorsJSON) > 0 {
		if err := json.Unmarshal(authorsJSON, &record.Authors); err != nil {
			return nil, fmt.Errorf("publication: malformed authors payload: %w", err)
		}
	}
	if record.Authors == nil {
		record.Authors = []Author{}
	}

	return record, nil
}

// # Publication Mutation

/*
Create inserts a new publication record.

Parameters:
  - context: context.Context
  - publication: *Publication

Returns:
  - error: Storage or constraint failures
*/
func (repository *PostgresRepository) Create(context context.Context, publication *Publication) error {
	if publication.ID == "" {
		publication.ID = uuidv7.New()
	}

	authorsJSON, err := json.Marshal(publication.Authors)
	if err != nil {
		return fmt.Errorf("publication: encode authors: %w", err)
	}

	const query = `
		INSERT INTO portal.publication
			(id, ownerid, title, journal, authors, year, qrating, pubtype,
			subjectarea, subjectcategory, college, institute, department, doi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING createdat, updatedat
	`
	err = repository.db.QueryRow(context, query,
		publication.ID, publication.OwnerID, publication.Title, publication.Journal,
		authorsJSON, publication.Year, publication.QRating, publication.Type,
		publication.SubjectArea, publication.SubjectCategory, publication.College,
		publication.Institute, publication.Department, publication.DOI,
	).Scan(&publication.CreatedAt, &publication.UpdatedAt)

	return dberr.Wrap(err, "create_publication")
}

/*
Update persists the mutable fields of an existing record.

Parameters:
  - context: context.Context
  - publication: *Publication

Returns:
  - error: dberr.ErrNotFound if the record does not exist
*/
func (repository *PostgresRepository) Update(context context.Context, publication *Publication) error {
	authorsJSON, err := json.Marshal(publication.Authors)
	if err != nil {
		return fmt.Errorf("publication: encode authors: %w", err)
	}

	const query = `
		UPDATE portal.publication
		SET title = $2, journal = $3, authors = $4, year = $5, qrating = $6,
			pubtype = $7, subjectarea = $8, subjectcategory = $9, college = $10,
			institute = $11, department = $12, doi = $13, updatedat = now()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat
	`
	err = repository.db.QueryRow(context, query,
		publication.ID, publication.Title, publication.Journal, authorsJSON,
		publication.Year, publication.QRating, publication.Type,
		publication.SubjectArea, publication.SubjectCategory, publication.College,
		publication.Institute, publication.Department, publication.DOI,
	).Scan(&publication.UpdatedAt)

	return dberr.Wrap(err, "update_publication")
}

/*
SoftDelete marks the record as deleted without physical row removal.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: dberr.ErrNotFound if the record does not exist
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	const query = `
		UPDATE portal.publication
		SET deletedat = now()
		WHERE id = $1 AND deletedat IS NULL
	`
	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_publication")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
