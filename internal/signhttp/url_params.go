package signhttp

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/otasign/otasign/internal/signregexp"
)

var (
	idParam   = fmt.Sprintf("{id:%s}", signregexp.UUID.String())
	fileParam = `{file:[a-zA-Z0-9_.-]+\.[a-zA-Z]+}`
)

func artifactID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func file(r *http.Request) string {
	return chi.URLParam(r, "file")
}

func pretty(r *http.Request) bool {
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	return pretty
}
