package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/dto"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object into dst. Any syntax or type
// problem is reported as a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.Validation("Request body must not be empty.")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return apperr.Validation(fmt.Sprintf("%s: must be a %s", typeErr.Field, typeErr.Type))
		case errors.As(err, &maxErr):
			return apperr.Validation("Request body is too large.")
		default:
			return apperr.Validation("Request body must be a valid JSON object.")
		}
	}
	if dec.More() {
		return apperr.Validation("Request body must contain a single JSON object.")
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest(fmt.Sprintf("%s must be a positive integer.", name))
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apperr.BadRequest(fmt.Sprintf("%s must be a positive integer.", name))
	}
	return v, nil
}

// pageFromQuery reads page and number_per_page, applying defaults.
func pageFromQuery(r *http.Request) (dto.PageRequest, error) {
	page, err := queryInt(r, "page", dto.DefaultPage)
	if err != nil {
		return dto.PageRequest{}, err
	}
	perPage, err := queryInt(r, "number_per_page", dto.DefaultNumberPerPage)
	if err != nil {
		return dto.PageRequest{}, err
	}
	return dto.PageRequest{Page: page, NumberPerPage: perPage}, nil
}
