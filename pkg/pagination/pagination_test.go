package pagination_test

import (
	"net/http/httptest"
	"testing"

	"podboard/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) pagination.Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return pagination.Parse(c)
}

func TestParse_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, pagination.DefaultPage, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestParse_Explicit(t *testing.T) {
	p := paramsFor(t, "page=3&limit=10")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 20, p.Offset)
}

func TestParse_ClampsBadValues(t *testing.T) {
	p := paramsFor(t, "page=-1&limit=0")
	assert.Equal(t, pagination.DefaultPage, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)

	p = paramsFor(t, "limit=9999")
	assert.Equal(t, pagination.MaxLimit, p.Limit)
}
