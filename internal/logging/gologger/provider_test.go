package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestNewProviderBuildsModuleLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("sdui.render")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	child := logger.WithFields(map[string]any{"page_id": "welcome"})
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}
	child.Debug("render.page.start")
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNilProviderFallsBackToNoOp(t *testing.T) {
	var p *Provider
	logger := p.GetLogger("sdui")
	if logger == nil {
		t.Fatal("expected noop logger")
	}
	logger.Info("dropped")
}

func TestAdapterDelegatesAndClonesFields(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")

	fields := map[string]any{"component_id": "comp_1"}
	_ = adapted.WithFields(fields)
	fields["component_id"] = "comp_2"

	if len(stub.fields) != 1 || stub.fields[0]["component_id"] != "comp_1" {
		t.Fatalf("expected cloned fields, got %v", stub.fields)
	}
	if got := adapted.WithFields(nil); got != adapted {
		t.Fatalf("expected empty fields to return the same logger")
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}

	want := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if len(stub.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(stub.calls))
	}
	for i := range want {
		if stub.calls[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q", i, want[i], stub.calls[i])
		}
	}
}

func TestFlattenSortsKeys(t *testing.T) {
	got := flatten(map[string]any{"b": 2, "a": 1})
	if len(got) != 4 || got[0] != "a" || got[2] != "b" {
		t.Fatalf("unexpected flatten output %v", got)
	}
}

func TestNormalizeFocusDropsBlanksAndDuplicates(t *testing.T) {
	got := normalizeFocus([]string{" sdui.render ", "", "sdui.render", "sdui.actions"})
	if len(got) != 2 || got[0] != "sdui.render" || got[1] != "sdui.actions" {
		t.Fatalf("unexpected focus %v", got)
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
	return s
}
