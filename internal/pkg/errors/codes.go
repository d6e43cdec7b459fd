package errors

import "net/http"

var (
	// ErrCatalogFetch - любая ошибка получения каталога: сеть, статус, формат ответа
	ErrCatalogFetch = New(
		"CATALOG_FETCH_FAILED",
		"An error occurred while fetching events",
		http.StatusBadGateway,
	)

	ErrVenueNotFound = New(
		"VENUE_NOT_FOUND",
		"Venue not found in the current location",
		http.StatusNotFound,
	)

	ErrLocationRequired = New(
		"LOCATION_REQUIRED",
		"Location must not be empty",
		http.StatusBadRequest,
	)

	// ErrPreferencePersist - предупреждение, наружу не отдаётся
	ErrPreferencePersist = New(
		"PREFERENCE_PERSIST_FAILED",
		"Failed to persist venue preferences",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
