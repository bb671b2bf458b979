package router

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/habitquest/backend/pkg/errorx"
)

// bindRequest fills the request struct from the query string (GET) or the
// JSON body (everything else). Query binding covers string, int, and bool
// fields named by their json tag.
func bindRequest(r *http.Request, req any) error {
	switch r.Method {
	case http.MethodGet, http.MethodDelete:
		return bindQuery(r, req)
	default:
		return bindBody(r, req)
	}
}

func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		if name == "" || name == "-" {
			continue
		}

		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int:
			n, err := strconv.Atoi(queryVal)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid value of %s", name)
			}
			v.Field(i).SetInt(int64(n))

		case reflect.Bool:
			b, err := strconv.ParseBool(queryVal)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid value of %s", name)
			}
			v.Field(i).SetBool(b)
		}
	}

	return nil
}

func bindBody(r *http.Request, req any) error {
	// Multipart bodies (file uploads) are parsed by the handler itself.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errorx.New(errorx.BadRequest, "Cannot read the request body")
	}

	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, req); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid request body")
	}

	return nil
}
