package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

func unaryHandler[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) http.Handler {
	return connect.NewUnaryHandler(procedure, fn,
		append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)...,
	)
}

func unaryClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](
		httpClient,
		strings.TrimRight(baseURL, "/")+procedure,
		append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)...,
	)
}

// router dispatches a service's procedures by exact path.
type router map[string]http.Handler

func (r router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}
