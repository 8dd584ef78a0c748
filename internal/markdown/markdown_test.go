package markdown

import (
	"errors"
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) {
	return "", errors.New("nope")
}

func withRenderer(t *testing.T, width int, r renderer) {
	t.Helper()

	rendererMu.Lock()
	prev, hadPrev := renderers[width]
	renderers[width] = r
	rendererMu.Unlock()

	t.Cleanup(func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[width] = prev
		} else {
			delete(renderers, width)
		}
		rendererMu.Unlock()
	})
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	withRenderer(t, 20, panicRenderer{})

	out := SafeRender(20, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestSafeRender_FallsBackOnError(t *testing.T) {
	withRenderer(t, 18, failingRenderer{})

	out := SafeRender(20, 2, []byte("hello\r\nworld\n"))
	if string(out) != "  hello\n  world" {
		t.Fatalf("expected indented fallback, got %q", string(out))
	}
}

func TestRender_ReturnsErrorFromRenderer(t *testing.T) {
	withRenderer(t, 21, failingRenderer{})

	if _, err := Render(21, 0, []byte("# Title")); err == nil {
		t.Fatal("expected error from failing renderer")
	}
}

func TestRender_BlankInput(t *testing.T) {
	out, err := Render(80, 0, []byte("  \n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil output, got %q", string(out))
	}
}

func TestRender_FormatsHeadings(t *testing.T) {
	out, err := Render(80, 0, []byte("# Deliverable 001\n\n## Context\n\nSome text.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "Deliverable 001") || !strings.Contains(text, "Some text.") {
		t.Fatalf("expected rendered document to keep content, got %q", text)
	}
}
