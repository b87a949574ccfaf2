package httpapi

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/dmitrijs2005/resumekeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const defaultContentType = "application/octet-stream"

func (h *handlers) listResumes(c *gin.Context) {
	list, err := h.resumes.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getResume(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	r, err := h.resumes.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// addResume attaches resume metadata to the student named by :id.
func (h *handlers) addResume(c *gin.Context) {
	studentID, ok := h.pathID(c)
	if !ok {
		return
	}
	var r models.Resume
	if !h.bind(c, &r) {
		return
	}
	created, err := h.resumes.AddToStudent(c.Request.Context(), studentID, &r)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *handlers) uploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, h.logger, fmt.Errorf("%w: file exceeds %d bytes", common.ErrorValidation, h.maxUpload))
			return
		}
		abortWithError(c, h.logger, fmt.Errorf("%w: file is required", common.ErrorValidation))
		return
	}
	if fh.Size > h.maxUpload {
		abortWithError(c, h.logger, fmt.Errorf("%w: file exceeds %d bytes", common.ErrorValidation, h.maxUpload))
		return
	}

	studentID, err := strconv.ParseInt(c.PostForm("studentId"), 10, 64)
	if err != nil {
		abortWithError(c, h.logger, fmt.Errorf("%w: invalid studentId", common.ErrorValidation))
		return
	}

	f, err := fh.Open()
	if err != nil {
		abortWithError(c, h.logger, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err = h.resumes.Upload(c.Request.Context(), studentID, c.PostForm("title"), services.Upload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.String(http.StatusOK, "file uploaded and has been saved")
}

func (h *handlers) downloadMyResume(c *gin.Context) {
	r, body, err := h.resumes.DownloadForUser(c.Request.Context(), username(c))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	defer body.Close()

	contentType := r.FileType
	if contentType == "" {
		contentType = defaultContentType
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": r.FileName})
	c.DataFromReader(http.StatusOK, r.Size, contentType, body, map[string]string{
		"Content-Disposition": disposition,
	})
}
