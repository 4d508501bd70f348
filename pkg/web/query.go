package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// Bound reports whether a query value is acceptable.
type Bound func(v int) bool

// AtLeast accepts values >= lo.
func AtLeast(lo int) Bound {
	return func(v int) bool { return v >= lo }
}

// Between accepts values within [lo, hi].
func Between(lo, hi int) Bound {
	return func(v int) bool { return v >= lo && v <= hi }
}

// QueryInt reads an optional integer query parameter. An absent parameter yields def.
// A malformed or out of bounds value answers 400 and returns false.
func QueryInt(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, def int, bound Bound) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || !bound(v) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, raw))
		return 0, false
	}
	return v, true
}

// Page returns the window [offset, offset+limit) of items, clamped to its length.
func Page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
