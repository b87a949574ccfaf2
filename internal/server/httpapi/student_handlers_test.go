package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRoutes(t *testing.T) {
	f := newAPIFixture(t)
	token := f.userToken(t, "alice")

	w := f.do(t, http.MethodPost, "/students/add", token, models.Student{Name: "Ann", Branch: "CSE", Percentage: 88})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.NotNil(t, created.UserID)
	path := "/students/" + strconv.FormatInt(created.ID, 10)

	w = f.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPut, path, token, models.Student{Name: "Anna", Branch: "IT", Percentage: 90})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Anna", updated.Name)

	w = f.do(t, http.MethodGet, "/students", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = f.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrStudentNotFound.Error(), trimmed(w))
}

func TestStudentRoutes_BadInput(t *testing.T) {
	f := newAPIFixture(t)
	token := f.userToken(t, "alice")

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/students/abc", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, "/students/0", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/students/add", token, models.Student{Percentage: 50}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/students/add", token, "{").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, "/students/42", token, models.Student{Name: "x"}).Code)
}
