package forge

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/forgehub/forge/internal/pathtemplate"
)

// Request is the normalized, provider-agnostic form of one HTTP call, handed
// to the transport (and to interceptors). Query carries parameters for GET
// and DELETE; Body carries them, JSON-encoded, for POST, PATCH, and PUT.
type Request struct {
	Verb  string
	Path  string
	Query url.Values
	Body  any
}

// buildRequest turns an endpoint declaration plus a normalized call into a
// dispatchable request. Path identifiers come from the call's positional
// values; remaining parameters split by verb.
func buildRequest(ep Endpoint, call *NormalizedCall) (*Request, *Error) {
	path, err := pathtemplate.Expand(ep.Path, call.Positional)
	if err != nil {
		return nil, Errorf(CodeInvalidArgument, "%v", err)
	}

	req := &Request{Verb: ep.Verb, Path: path}
	switch ep.Verb {
	case "GET", "DELETE":
		q := make(url.Values, len(call.Params))
		for k, v := range call.Params {
			q.Set(k, paramString(v))
		}
		req.Query = q
	default:
		if len(call.Params) > 0 {
			req.Body = call.Params
		}
	}
	return req, nil
}

// paramString renders a parameter value for a query string.
func paramString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// dispatch performs a single attempt through the interceptor chain and the
// transport. Retry and backoff belong to the transport collaborator, never
// here.
func (c *Client) dispatch(ctx context.Context, req *Request) (*RawResponse, error) {
	c.log().DebugContext(ctx, "dispatching request",
		slog.String("verb", req.Verb),
		slog.String("path", req.Path))

	perform := Handler(c.transport.Perform)
	if chain := chainInterceptors(c.interceptors); chain != nil {
		return chain(ctx, req, perform)
	}
	return perform(ctx, req)
}

// invoke is the engine every endpoint method delegates to: normalize the
// call against its contract, dispatch, translate errors, map the response.
//
// Argument errors short-circuit before any I/O. Translated HTTP errors abort
// the call with no partial result. Transport connectivity failures propagate
// opaquely, untranslated.
func (c *Client) invoke(ctx context.Context, ep Endpoint, rctx *ResourceContext, inv CallInvocation) (Resource, []Resource, error) {
	call, verr := normalize(ep.Contract, rctx, inv)
	if verr != nil {
		return nil, nil, verr
	}

	req, verr := buildRequest(ep, call)
	if verr != nil {
		return nil, nil, verr
	}

	raw, err := c.dispatch(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if terr := translateStatus(raw.Status, raw.Body); terr != nil {
		return nil, nil, terr
	}

	switch ep.Shape {
	case ShapeSequence:
		seq, merr := mapSequence(raw, inv.OnEach)
		if merr != nil {
			return nil, nil, merr
		}
		return nil, seq, nil
	case ShapeEmpty:
		return nil, nil, nil
	default:
		res, merr := mapSingle(raw)
		if merr != nil {
			return nil, nil, merr
		}
		return res, nil, nil
	}
}

// invokeSingle is invoke for endpoints declared ShapeSingle.
func (c *Client) invokeSingle(ctx context.Context, ep Endpoint, rctx *ResourceContext, inv CallInvocation) (Resource, error) {
	res, _, err := c.invoke(ctx, ep, rctx, inv)
	return res, err
}

// invokeSequence is invoke for endpoints declared ShapeSequence.
func (c *Client) invokeSequence(ctx context.Context, ep Endpoint, rctx *ResourceContext, inv CallInvocation) ([]Resource, error) {
	_, seq, err := c.invoke(ctx, ep, rctx, inv)
	return seq, err
}

// invokeEmpty is invoke for endpoints declared ShapeEmpty.
func (c *Client) invokeEmpty(ctx context.Context, ep Endpoint, rctx *ResourceContext, inv CallInvocation) error {
	_, _, err := c.invoke(ctx, ep, rctx, inv)
	return err
}
