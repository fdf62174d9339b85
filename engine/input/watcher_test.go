package input

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func loadBindingsFile(path string) (Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBindings(data)
}

func TestWatcherReloadsBindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.yaml")
	if err := os.WriteFile(path, []byte(`Boost: { type: button, controls: [key:LeftShift] }`), 0o644); err != nil {
		t.Fatal(err)
	}

	bs, err := loadBindingsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRouter(NewActionMap(WithActions("Boost")), bs)
	if err != nil {
		t.Fatal(err)
	}

	results := make(chan error, 8)
	w, err := NewWatcher(path, loadBindingsFile, r,
		WithDebounce(20*time.Millisecond),
		WithWatcherLogger(zaptest.NewLogger(t)),
		WithReloadCallback(func(_ Bindings, err error) { results <- err }),
	)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// an invalid file keeps the previous bindings
	if err := os.WriteFile(path, []byte(`Boost: { type: nonsense }`), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-results:
		if err == nil {
			t.Fatalf("expected a reload error for an invalid file")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
	if r.Bindings()["Boost"].Controls[0] != "key:LeftShift" {
		t.Fatalf("bindings changed after a failed reload")
	}

	if err := os.WriteFile(path, []byte(`Boost: { type: button, controls: [key:Space] }`), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case err := <-results:
			// a late event from the invalid write may still be in flight
			reloaded = err == nil
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
	if got := r.Bindings()["Boost"].Controls[0]; got != "key:Space" {
		t.Fatalf("bindings not reloaded, got %q", got)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.yaml")
	if err := os.WriteFile(path, []byte(`Boost: { type: button, controls: [key:LeftShift] }`), 0o644); err != nil {
		t.Fatal(err)
	}
	bs, _ := loadBindingsFile(path)
	r, _ := NewRouter(NewActionMap(WithActions("Boost")), bs)

	results := make(chan error, 1)
	w, err := NewWatcher(path, loadBindingsFile, r,
		WithDebounce(10*time.Millisecond),
		WithReloadCallback(func(_ Bindings, err error) { results <- err }),
	)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-results:
		t.Fatalf("a sibling file must not trigger a reload")
	case <-time.After(200 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_ = w.Close()
}
