package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

// pathID parses the :id route parameter.
func (h *handlers) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, h.logger, fmt.Errorf("%w: invalid id %q", common.ErrorValidation, c.Param("id")))
		return 0, false
	}
	return id, true
}

func (h *handlers) listStudents(c *gin.Context) {
	list, err := h.students.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getStudent(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	st, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *handlers) createStudent(c *gin.Context) {
	var st models.Student
	if !h.bind(c, &st) {
		return
	}
	created, err := h.students.Create(c.Request.Context(), username(c), &st)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateStudent(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var st models.Student
	if !h.bind(c, &st) {
		return
	}
	updated, err := h.students.Update(c.Request.Context(), id, &st)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteStudent(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
