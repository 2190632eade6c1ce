package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingHooks struct {
	starts, files, completes int
}

func (h *countingHooks) OnScanStart(context.Context, string) { h.starts++ }
func (h *countingHooks) OnFileParsed(context.Context, string, string, int, time.Duration, error) {
	h.files++
}
func (h *countingHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {
	h.completes++
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	h := NoopScanHooks{}
	h.OnScanStart(ctx, ".")
	h.OnFileParsed(ctx, "go.mod", "go.mod", 3, time.Millisecond, nil)
	h.OnScanComplete(ctx, ".", 1, time.Second, errors.New("boom"))
}

func TestScanHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Fatal("Scan() should return NoopScanHooks by default")
	}

	custom := &countingHooks{}
	SetScanHooks(custom)
	if Scan() != custom {
		t.Error("SetScanHooks should register custom hooks")
	}

	SetScanHooks(nil)
	if Scan() != custom {
		t.Error("SetScanHooks(nil) should keep the current hooks")
	}

	Scan().OnScanStart(context.Background(), ".")
	if custom.starts != 1 {
		t.Errorf("starts = %d, want 1", custom.starts)
	}

	Reset()
	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Reset() should restore NoopScanHooks")
	}
}
