package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/dto"
)

func codeOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	return appErr.Code
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Books","description":"Paper"}`, false},
		{"unknown fields ignored", `{"name":"Books","extra":1}`, false},
		{"empty body", ``, true},
		{"not json", `name=Books`, true},
		{"wrong type", `{"name":5}`, true},
		{"truncated", `{"name":"Books"`, true},
		{"two objects", `{"name":"a"}{"name":"b"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req dto.CreateCategoryRequest
			err := decodeJSON(httptest.NewRecorder(), r, &req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, apperr.CodeValidationError, codeOf(t, err))
		})
	}
}

func TestPathID(t *testing.T) {
	for raw, want := range map[string]int64{"1": 1, "42": 42} {
		r := httptest.NewRequest(http.MethodGet, "/items/"+raw, nil)
		r.SetPathValue("item_id", raw)
		id, err := pathID(r, "item_id")
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	for _, raw := range []string{"0", "-3", "abc", "1.5", "", "99999999999999999999"} {
		r := httptest.NewRequest(http.MethodGet, "/items/x", nil)
		r.SetPathValue("item_id", raw)
		_, err := pathID(r, "item_id")
		assert.Equal(t, apperr.CodeBadRequest, codeOf(t, err), "raw=%q", raw)
	}
}

func TestPageFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/categories/1/items", nil)
	page, err := pageFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, dto.PageRequest{Page: dto.DefaultPage, NumberPerPage: dto.DefaultNumberPerPage}, page)

	r = httptest.NewRequest(http.MethodGet, "/categories/1/items?page=3&number_per_page=7", nil)
	page, err = pageFromQuery(r)
	require.NoError(t, err)
	assert.Equal(t, dto.PageRequest{Page: 3, NumberPerPage: 7}, page)
	assert.Equal(t, 14, page.Offset())

	for _, q := range []string{"page=0", "page=abc", "number_per_page=-1", "number_per_page=2.5"} {
		r = httptest.NewRequest(http.MethodGet, "/categories/1/items?"+q, nil)
		_, err = pageFromQuery(r)
		assert.Equal(t, apperr.CodeBadRequest, codeOf(t, err), q)
	}
}
