package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/habitquest/backend/pkg/errorx"
	"github.com/habitquest/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func writeData(ctx context.Context, w http.ResponseWriter, data any) {
	writeJSON(ctx, w, response{Code: 0, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	writeJSON(ctx, w, response{Code: int64(errx.Code), Error: errx.Message})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")

	b, err := json.Marshal(resp)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal the response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(b); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
