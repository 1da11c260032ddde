package kit

import (
	"context"
	"errors"
	"testing"
)

func TestChainOrder(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				order = append(order, name+"_before")
				resp, err := next(ctx, req)
				order = append(order, name+"_after")
				return resp, err
			}
		}
	}

	base := func(_ context.Context, _ any) (any, error) {
		order = append(order, "endpoint")
		return "ok", nil
	}

	chained := Chain(mw("a"), mw("b"), mw("c"))(base)
	resp, err := chained(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp != "ok" {
		t.Fatalf("response: got %v", resp)
	}

	expected := []string{"a_before", "b_before", "c_before", "endpoint", "c_after", "b_after", "a_after"}
	if len(order) != len(expected) {
		t.Fatalf("order length: got %d, want %d", len(order), len(expected))
	}
	for i, v := range expected {
		if order[i] != v {
			t.Fatalf("order[%d]: got %q, want %q", i, order[i], v)
		}
	}
}

func TestChainErrorPropagation(t *testing.T) {
	errFail := errors.New("fail")
	base := func(_ context.Context, _ any) (any, error) {
		return nil, errFail
	}

	noop := func(next Endpoint) Endpoint { return next }
	chained := Chain(noop)(base)

	_, err := chained(context.Background(), nil)
	if !errors.Is(err, errFail) {
		t.Fatalf("error: got %v, want %v", err, errFail)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	if got := GetTransport(ctx); got != "http" {
		t.Errorf("default transport: got %q, want http", got)
	}
	ctx = WithTransport(ctx, "mcp")
	if got := GetTransport(ctx); got != "mcp" {
		t.Errorf("transport: got %q, want mcp", got)
	}

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("unset request id: got %q", got)
	}
	ctx = WithRequestID(ctx, "req_1")
	if got := GetRequestID(ctx); got != "req_1" {
		t.Errorf("request id: got %q", got)
	}
}
