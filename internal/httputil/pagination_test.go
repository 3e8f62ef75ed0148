package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/docgate/internal/httputil"
)

func contextFor(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/admin/documents?"+rawQuery, nil)
	return c
}

func TestParsePage(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		page, err := httputil.ParsePage(contextFor(""))
		require.NoError(t, err)
		assert.Equal(t, httputil.Page{Offset: 0, Limit: httputil.DefaultLimit}, page)
	})

	t.Run("EmptyValuesFallBack", func(t *testing.T) {
		page, err := httputil.ParsePage(contextFor("offset=&limit="))
		require.NoError(t, err)
		assert.Equal(t, httputil.Page{Offset: 0, Limit: httputil.DefaultLimit}, page)
	})

	t.Run("Bounds", func(t *testing.T) {
		page, err := httputil.ParsePage(contextFor("offset=250&limit=1"))
		require.NoError(t, err)
		assert.Equal(t, httputil.Page{Offset: 250, Limit: 1}, page)

		page, err = httputil.ParsePage(contextFor("limit=100"))
		require.NoError(t, err)
		assert.Equal(t, httputil.MaxLimit, page.Limit)
	})

	t.Run("RejectedValuesAreKeyedByParameter", func(t *testing.T) {
		for query, keys := range map[string][]string{
			"offset=-1":               {"offset"},
			"offset=abc":              {"offset"},
			"limit=0":                 {"limit"},
			"limit=101":               {"limit"},
			"limit=1.5":               {"limit"},
			"offset=-3&limit=5000":    {"offset", "limit"},
			"offset=ten&limit=twenty": {"offset", "limit"},
		} {
			_, err := httputil.ParsePage(contextFor(query))
			require.Error(t, err, query)

			var errs validation.Errors
			require.ErrorAs(t, err, &errs, query)
			assert.Len(t, errs, len(keys), query)
			for _, key := range keys {
				assert.Contains(t, errs, key, query)
			}
		}
	})
}

func TestParsePagination(t *testing.T) {
	offset, limit, err := httputil.ParsePagination(contextFor("offset=10&limit=20"))
	require.NoError(t, err)
	assert.Equal(t, 10, offset)
	assert.Equal(t, 20, limit)

	_, _, err = httputil.ParsePagination(contextFor("limit=101"))
	require.Error(t, err)
	assert.Equal(t, "limit: must be an integer between 1 and 100.", err.Error())
}
