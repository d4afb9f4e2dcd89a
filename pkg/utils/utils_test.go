package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "phones", Slugify("Phones"))
	assert.Equal(t, "galaxy-s24-ultra", Slugify("  Galaxy S24  Ultra! "))
	assert.Equal(t, "x1", Slugify("X1"))
	assert.Equal(t, "", Slugify("---"))
}

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=10", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p := GetPaginationParams(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 20, p.Offset)

	p = NewPaginationParams(0, 500)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}

func TestWindow(t *testing.T) {
	start, end := Window(5, 2, 1)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	start, end = Window(5, 10, 8)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	start, end = Window(5, 0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}
