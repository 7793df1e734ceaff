package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/go-chi/chi/v5"
)

var (
	errInvalidID     = errors.New("invalid id")
	errInvalidPaging = errors.New("invalid paging")
)

// parseID reads a positive integer path parameter
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parsePaging reads skip and limit from the query string.
// limit is capped at the configured maximum.
func parsePaging(r *http.Request, paging config.PagingConfig) (skip, limit int, err error) {
	q := r.URL.Query()

	skip, err = queryInt(q.Get("skip"), 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = queryInt(q.Get("limit"), paging.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}

	if limit > paging.MaxLimit {
		limit = paging.MaxLimit
	}
	return skip, limit, nil
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errInvalidPaging
	}
	return v, nil
}

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into dst. Bodies over maxBodyBytes fail.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
