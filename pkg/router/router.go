package router

import (
	"context"
	"net/http"

	"github.com/habitquest/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc can enrich the context (auth) or reject the request by
// returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context
	prefix  string
	befores []MiddlewareFunc
}

// New creates a router rooted at ctx; configs, logger, db, and the snowflake
// node travel to every handler through that context.
func New(ctx context.Context) *Router {
	return &Router{mux: http.NewServeMux(), baseCtx: ctx}
}

// Branch returns a sub-router sharing the mux, with its own pattern prefix
// and an independent middleware chain seeded from the parent's.
func (r *Router) Branch(pattern string) *Router {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)

	return &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
		prefix:  r.prefix + pattern,
		befores: befores,
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(r.prefix+pattern, wrap(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(r.prefix+pattern, wrap(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func wrap[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := make([]MiddlewareFunc, len(router.befores))
	copy(befores, router.befores)

	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(router.baseCtx, req)

		var err error
		for _, m := range befores {
			if ctx, err = m(ctx); err != nil {
				writeError(ctx, w, err)
				return
			}
		}

		var request Request
		if err := bindRequest(req, &request); err != nil {
			writeError(ctx, w, err)
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeData(ctx, w, resp)
	}
}
