package handlers

import (
	"errors"
	"net/http"

	"kds-backend/internal/models"
	"kds-backend/pkg/utils"
)

// writeError maps service errors onto HTTP status codes. Validation
// problems are 422, illegal transitions and lost races 409, storage
// outages 503 so the display can show a retry banner.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var transitionErr *models.InvalidTransitionError
	var storeErr *models.StoreUnavailableError

	switch {
	case errors.As(err, &validationErr):
		utils.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": validationErr.Error()})
	case errors.As(err, &transitionErr):
		utils.JSON(w, http.StatusConflict, map[string]string{"error": transitionErr.Error()})
	case errors.Is(err, models.ErrConflict):
		utils.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &storeErr):
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"error": storeErr.Error()})
	default:
		utils.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
