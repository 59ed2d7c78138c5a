// Copyright (c) 2026 ScholarHub. All rights reserved.

package publication

import (
	"context"

	"github.com/scholarhub/api/pkg/pagination"
)

// # Publication Data Access

// Repository defines the data access contract for the publication domain.
type Repository interface {

	/*
		List returns a filtered, sorted, paginated slice of publications and the
		total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (already scoped to the caller's authority)
		  - sort: pagination.Sort (field pre-validated against AllowedSortFields)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Publication: Slice of matching records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, sort pagination.Sort, limit, offset int) ([]*Publication, int, error)

	/*
		ListAll returns every publication matching the filter, unpaginated,
		for the statistics aggregator.

		Returns:
		  - []*Publication: Every matching record
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context, filter Filter) ([]*Publication, error)

	/*
		FindByID returns the publication with the given ID.

		Returns:
		  - *Publication: The hydrated record
		  - error: dberr.ErrNotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Publication, error)

	/*
		Create persists a new publication record.

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, publication *Publication) error

	/*
		Update persists changes to an existing record's mutable fields.

		Returns:
		  - error: dberr.ErrNotFound if the record does not exist
	*/
	Update(context context.Context, publication *Publication) error

	/*
		SoftDelete marks a record as deleted without physical row removal.

		Returns:
		  - error: dberr.ErrNotFound if the record does not exist
	*/
	SoftDelete(context context.Context, id string) error
}
