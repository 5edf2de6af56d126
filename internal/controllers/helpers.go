package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"eld_tracker/internal/services"
)

// parseIDParam pulls an unsigned id out of a URL parameter. Writes the 400
// response itself so callers can just return on !ok.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format."})
		return 0, false
	}
	return uint(id), true
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// Checks the lib/pq error code first and falls back to message sniffing for
// the pgx-backed driver and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// writeError maps service/storage errors onto the response taxonomy:
// validation problems and duplicates are 400, unknown ids are 404,
// everything else is a 500.
func writeError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found."})
	case isUniqueViolation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate value for a unique field: " + err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. The bool is
// false when the parameter is absent; a malformed value writes the 400.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted YYYY-MM-DD."})
		return time.Time{}, false, false
	}
	return t, true, true
}
