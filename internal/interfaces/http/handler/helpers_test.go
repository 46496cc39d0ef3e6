package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUUIDParam(t *testing.T) {
	t.Run("valid UUID", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		expected := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: expected.String()}}

		id, ok := parseUUIDParam(c, "id")
		assert.True(t, ok)
		assert.Equal(t, expected, id)
	})

	t.Run("malformed UUID", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		_, ok := parseUUIDParam(c, "id")
		assert.False(t, ok)
	})

	t.Run("missing param", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		_, ok := parseUUIDParam(c, "id")
		assert.False(t, ok)
	})
}

func TestParseOptionalUUID(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		id, err := parseOptionalUUID(nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("empty string", func(t *testing.T) {
		s := ""
		id, err := parseOptionalUUID(&s)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("valid UUID", func(t *testing.T) {
		expected := uuid.New()
		s := expected.String()
		id, err := parseOptionalUUID(&s)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, expected, *id)
	})

	t.Run("malformed UUID", func(t *testing.T) {
		s := "not-a-uuid"
		_, err := parseOptionalUUID(&s)
		assert.Error(t, err)
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		expectedPage     int
		expectedPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "page=3&page_size=50", 3, 50},
		{"zero page falls back", "page=0", 1, 20},
		{"negative page falls back", "page=-1", 1, 20},
		{"page size over cap falls back", "page_size=500", 1, 20},
		{"non-numeric values fall back", "page=abc&page_size=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, pageSize := parsePagination(c)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedPageSize, pageSize)
		})
	}
}
