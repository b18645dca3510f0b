package handlers

import (
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"dpxcruise/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid payload", err.Error())
		return false
	}
	return true
}

// queryID reads a positive id from the first query parameter present among
// names. Web clients mix tripid and tripID spellings.
func queryID(c *gin.Context, names ...string) (int64, bool) {
	for _, name := range names {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "invalid_id", name+" must be a positive integer", nil)
			return 0, false
		}
		return id, true
	}
	respondError(c, http.StatusBadRequest, "missing_id", names[0]+" is required", nil)
	return 0, false
}

// requirePositive responds 400 unless every named value is positive.
func requirePositive(c *gin.Context, values map[string]int64) bool {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if values[name] <= 0 {
			respondError(c, http.StatusBadRequest, "missing_id", name+" is required", nil)
			return false
		}
	}
	return true
}

func requestID(c *gin.Context) string { return middleware.GetRequestID(c) }

func respondMessage(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func sendFile(c *gin.Context, contentType, disposition, filename string, data []byte) {
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
