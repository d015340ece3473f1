package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost:5000", "/expenses")
	h.OnResponse(ctx, "GET", "localhost:5000", "/expenses", 200, time.Second)
	h.OnError(ctx, "GET", "localhost:5000", "/expenses", errors.New("refused"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)
	if HTTP() != custom {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	HTTP().OnRequest(context.Background(), "DELETE", "localhost:5000", "/expenses/1")
	if custom.requests != 1 {
		t.Errorf("requests = %d, want 1", custom.requests)
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)
	SetHTTPHooks(nil)

	if HTTP() != custom {
		t.Error("SetHTTPHooks(nil) should not replace registered hooks")
	}
}

type testHTTPHooks struct {
	requests int
}

func (h *testHTTPHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *testHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (h *testHTTPHooks) OnError(context.Context, string, string, string, error) {}
