package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantSize   int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page defaults", 0, 10, 0, 10},
		{"zero limit defaults", 2, 0, 10, 10},
		{"oversized limit defaults", 1, 500, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, size := CalculateOffsetLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.Limit)
	assert.Equal(t, int64(45), info.Total)
	assert.Equal(t, 5, info.TotalPages)

	// Page beyond the last page is clamped
	info = NewPaginationInfo(45, 9, 10)
	assert.Equal(t, 5, info.Page)

	// Empty result still reports one page
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=3&limit=25", nil)
	page, limit := ParsePaginationParams(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=abc&limit=9999", nil)
	page, limit = ParsePaginationParams(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}
