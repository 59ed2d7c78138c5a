// Copyright (c) 2026 ScholarHub. All rights reserved.

package users

import (
	"context"

	"github.com/scholarhub/api/pkg/pagination"
)

// # User Data Access

// Repository defines the data access contract for the users domain.
type Repository interface {

	/*
		List returns a filtered, sorted, paginated slice of users and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (already scoped to the caller's authority)
		  - sort: pagination.Sort (field pre-validated against AllowedSortFields)
		  - limit: int
		  - offset: int

		Returns:
		  - []*User: Slice of matching accounts
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, sort pagination.Sort, limit, offset int) ([]*User, int, error)

	/*
		ListAll returns every user matching the filter, unpaginated.

		Description: Feeds the statistics aggregator, which requires the full
		scoped record set to build distributions.

		Parameters:
		  - context: context.Context
		  - filter: Filter (already scoped to the caller's authority)

		Returns:
		  - []*User: Every matching account
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context, filter Filter) ([]*User, error)

	/*
		FindByID returns the user with the given ID.

		Returns:
		  - *User: The hydrated account
		  - error: dberr.ErrNotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the user with the given email address.

		Returns:
		  - *User: The hydrated account
		  - error: dberr.ErrNotFound if missing or soft-deleted
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account.

		Returns:
		  - error: Conflict on duplicate email/faculty ID, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to an existing account's mutable fields.

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *User) error

	/*
		SetActive toggles an account's active flag.

		Returns:
		  - error: dberr.ErrNotFound if the account does not exist
	*/
	SetActive(context context.Context, id string, isActive bool) error

	/*
		SoftDelete marks an account as deleted without physical row removal.

		Returns:
		  - error: dberr.ErrNotFound if the account does not exist
	*/
	SoftDelete(context context.Context, id string) error
}
