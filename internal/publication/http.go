// Copyright (c) 2026 ScholarHub. All rights reserved.

// HTTP interface for publication records.
//
// # Routing Strategy
//
//   - Authenticated: Every route requires a valid access token; ownership and
//     college scoping happen in the service layer.

package publication

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/scholarhub/api/internal/platform/request"
	"github.com/scholarhub/api/internal/platform/respond"
	"github.com/scholarhub/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for publication operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new publication [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with publication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublications)
	router.Post("/", handler.createPublication)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getPublication)
		subRouter.Patch("/", handler.updatePublication)
		subRouter.Delete("/", handler.deletePublication)
	})

	return router
}

// # Publication Endpoints

/*
GET /api/v1/publications.

Description: Retrieves a paginated, filtered, sorted list of publication
records visible to the caller.

Request:
  - year, years, qrating, publicationtype, subjectarea, search: filters
  - college, institute, department: hierarchy filters
  - sortby, sortorder: ordering
  - page, limit: pagination

Response:
  - 200: []Publication: Paginated list
*/
func (handler *Handler) listPublications(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queryParams := request.URL.Query()
	paginationParams := pagination.FromRequest(request)
	sort := pagination.ResolveSort(queryParams, AllowedSortFields, DefaultSortField)
	filter := FilterFromQuery(queryParams)

	records, total, err := handler.service.ListPublications(
		request.Context(), claims, filter, sort,
		paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/publications/{id}.

Response:
  - 200: Publication: Success
  - 404: ErrNotFound: Missing or outside the caller's scope
*/
func (handler *Handler) getPublication(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetPublication(request.Context(), claims, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
POST /api/v1/publications.

Request:
  - body: CreateInput

Response:
  - 201: Publication: Created record
  - 400: ValidationError: Invalid fields or hierarchy placement
  - 403: Forbidden: Placement outside the caller's authority
*/
func (handler *Handler) createPublication(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.CreatePublication(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

/*
PATCH /api/v1/publications/{id}.

Request:
  - body: UpdateInput (partial)

Response:
  - 200: Publication: Updated record
  - 400: ValidationError: Invalid fields or hierarchy placement
  - 404: ErrNotFound: Missing or outside the caller's scope
*/
func (handler *Handler) updatePublication(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.UpdatePublication(request.Context(), claims, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
DELETE /api/v1/publications/{id}.

Response:
  - 204: Deleted
  - 404: ErrNotFound: Missing or outside the caller's scope
*/
func (handler *Handler) deletePublication(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePublication(request.Context(), claims, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
