// Copyright (c) 2026 ScholarHub. All rights reserved.

// HTTP interface for the dashboard statistics.

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/scholarhub/api/internal/platform/request"
	"github.com/scholarhub/api/internal/platform/respond"
	"github.com/scholarhub/api/internal/publication"
	"github.com/scholarhub/api/internal/users"
)

// Handler implements the HTTP layer for dashboard statistics.
type Handler struct {
	service *Service
}

// NewHandler constructs a new stats [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with statistics endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/users", handler.userStatistics)
	router.Get("/publications", handler.publicationStatistics)

	return router
}

/*
GET /api/v1/stats/users.

Description: Returns the account dashboard envelope, scoped to the
requesting admin's authority.

Request:
  - role, college, institute, department, isactive, search: filters

Response:
  - 200: UserStatistics: Aggregated dashboard figures
*/
func (handler *Handler) userStatistics(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	envelope, err := handler.service.UserStatistics(
		request.Context(), claims, users.FilterFromQuery(request.URL.Query()),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope)
}

/*
GET /api/v1/stats/publications.

Description: Returns the research dashboard envelope, scoped to the
requesting admin's authority.

Request:
  - year, years, qrating, publicationtype, subjectarea, search: filters
  - college, institute, department: hierarchy filters

Response:
  - 200: PublicationStatistics: Aggregated dashboard figures
*/
func (handler *Handler) publicationStatistics(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	envelope, err := handler.service.PublicationStatistics(
		request.Context(), claims, publication.FilterFromQuery(request.URL.Query()),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope)
}
