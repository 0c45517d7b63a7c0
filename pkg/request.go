package pkg

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// IntPathVar reads a positive integer path variable (e.g. {userId}).
func IntPathVar(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("path var [%s] missing", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("path var [%s]: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("path var [%s] must be positive, got %d", name, v)
	}
	return v, nil
}

// IsJSONRequest reports whether the request declares a JSON body. Charset params are ignored.
func IsJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(strings.ToLower(ct)) == ContentType.JSON
}
