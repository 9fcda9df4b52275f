package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestPromptNameReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := NewNamePrompter(strings.NewReader("login button\r\nsecond\n"), &out)

	name, ok, err := p.PromptName(context.Background(), "Sample name")
	if err != nil || !ok || name != "login button" {
		t.Fatalf("PromptName() = %q, %v, %v", name, ok, err)
	}
	name, ok, err = p.PromptName(context.Background(), "Sample name")
	if err != nil || !ok || name != "second" {
		t.Fatalf("second PromptName() = %q, %v, %v", name, ok, err)
	}
	if !strings.Contains(out.String(), "Sample name") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestPromptNameEOFCancels(t *testing.T) {
	p := NewNamePrompter(strings.NewReader(""), io.Discard)
	name, ok, err := p.PromptName(context.Background(), "Sample name")
	if err != nil || ok || name != "" {
		t.Fatalf("PromptName() = %q, %v, %v; want cancel", name, ok, err)
	}
}

func TestPromptNameHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewNamePrompter(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok, err := p.PromptName(ctx, "Sample name")
	if ok || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("PromptName() = %v, %v; want deadline exceeded", ok, err)
	}
}
