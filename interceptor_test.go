package forge

import (
	"context"
	"testing"
)

func TestChainInterceptorsEmpty(t *testing.T) {
	if chainInterceptors(nil) != nil {
		t.Error("expected nil chain for no interceptors")
	}
}

func TestChainInterceptorsOrder(t *testing.T) {
	var order []string
	mk := func(name string) UnaryInterceptor {
		return func(ctx context.Context, req *Request, next Handler) (*RawResponse, error) {
			order = append(order, name+":before")
			res, err := next(ctx, req)
			order = append(order, name+":after")
			return res, err
		}
	}

	chain := chainInterceptors([]UnaryInterceptor{mk("outer"), mk("inner")})
	_, err := chain(context.Background(), &Request{Verb: "GET", Path: "/x"},
		func(ctx context.Context, req *Request) (*RawResponse, error) {
			order = append(order, "handler")
			return &RawResponse{Status: 200}, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestInterceptorShortCircuit(t *testing.T) {
	spy := &spyTransport{}
	client := NewClient(spy).WithUnaryInterceptor(
		func(ctx context.Context, req *Request, next Handler) (*RawResponse, error) {
			return nil, NewError(CodeForbidden, "blocked by policy")
		})

	_, err := client.Repos().Get(context.Background(), "acme", "widget")
	if !IsForbidden(err) {
		t.Errorf("expected forbidden from interceptor, got %v", err)
	}
	if len(spy.requests) != 0 {
		t.Errorf("expected transport never reached, got %d requests", len(spy.requests))
	}
}

func TestInterceptorSeesRawStatus(t *testing.T) {
	spy := &spyTransport{status: 404}
	var seen int
	client := NewClient(spy).WithUnaryInterceptor(
		func(ctx context.Context, req *Request, next Handler) (*RawResponse, error) {
			res, err := next(ctx, req)
			if res != nil {
				seen = res.Status
			}
			return res, err
		})

	_, err := client.Repos().Get(context.Background(), "acme", "widget")
	if !IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if seen != 404 {
		t.Errorf("expected interceptor to observe raw 404, got %d", seen)
	}
}
