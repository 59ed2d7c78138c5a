// Copyright (c) 2026 ScholarHub. All rights reserved.

// HTTP interface for account management.
//
// # Routing Strategy
//
//   - Restricted: Every route requires campus_admin or above; scoping to the
//     admin's own college happens in the service layer, not the router.

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/scholarhub/api/internal/platform/request"
	"github.com/scholarhub/api/internal/platform/respond"
	"github.com/scholarhub/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for user management operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new users [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with user-management endpoints.
//
// Note: the role-gating middleware is wrapped when mounting this router in
// the server composition root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getUser)
		subRouter.Patch("/", handler.updateUser)
		subRouter.Delete("/", handler.deleteUser)
		subRouter.Patch("/active", handler.setActive)
	})

	return router
}

// # User Endpoints

/*
GET /api/v1/users.

Description: Retrieves a paginated, filtered, sorted list of accounts
visible to the requesting admin.

Request:
  - role, college, institute, department, isactive, search: filters (§Filter)
  - sortby, sortorder: ordering
  - page, limit: pagination

Response:
  - 200: []User: Paginated list
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryParams := request.URL.Query()
	paginationParams := pagination.FromRequest(request)
	sort := pagination.ResolveSort(queryParams, AllowedSortFields, DefaultSortField)
	filter := FilterFromQuery(queryParams)

	accounts, total, err := handler.service.ListUsers(
		request.Context(), claims, filter, sort,
		paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: User: Success
  - 404: ErrNotFound: Missing or outside the admin's scope
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), claims, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
POST /api/v1/users.

Request:
  - body: CreateUserInput

Response:
  - 201: User: Created account
  - 400: ValidationError: Invalid fields or hierarchy placement
  - 403: Forbidden: Campus admin creating outside their authority
  - 409: Conflict: Duplicate email or faculty ID
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateUserInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
PATCH /api/v1/users/{id}.

Request:
  - body: UpdateUserInput (partial)

Response:
  - 200: User: Updated account
  - 400: ValidationError: Invalid fields or hierarchy placement
  - 404: ErrNotFound: Missing or outside the admin's scope
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateUserInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), claims, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{id}/active.

Request:
  - body: {"is_active": bool}

Response:
  - 204: Toggled
  - 404: ErrNotFound: Missing or outside the admin's scope
  - 422: Unprocessable: Self-deactivation attempt
*/
func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetUserActive(request.Context(), claims, requestutil.Param(request, "id"), input.IsActive); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/users/{id}.

Response:
  - 204: Deleted
  - 404: ErrNotFound: Missing or outside the admin's scope
  - 422: Unprocessable: Self-deletion attempt
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), claims, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
