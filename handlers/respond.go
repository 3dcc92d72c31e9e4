package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"scoreboard/services"
	"scoreboard/utils/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Anything untyped is an
// internal error and is logged rather than echoed to the client.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	default:
		logger.Errorf("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// attachmentFromForm reads an optional multipart file field. A missing field,
// or a body that is not multipart at all, yields a nil attachment.
func attachmentFromForm(c *gin.Context, field string) (*services.Attachment, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &services.Attachment{
		Filename:    filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
