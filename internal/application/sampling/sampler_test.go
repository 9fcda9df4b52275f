package sampling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/pkg/logger"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

func newTestSampler(tree ports.TreeProvider, attempts int) (*Sampler, *[]time.Duration) {
	var pauses []time.Duration
	s := &Sampler{
		Tree:     tree,
		Logger:   logger.Nop(),
		Attempts: attempts,
		Interval: 220 * time.Millisecond,
	}
	s.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}
	return s, &pauses
}

func TestSamplerQueryRetriesUntilNonEmpty(t *testing.T) {
	el := &stubElement{id: "ok", bounds: domain.Bounds{Right: 10, Bottom: 10}}
	tree := &stubTree{
		responses: [][]ports.RawElement{nil, {}, {el}},
	}
	s, pauses := newTestSampler(tree, 3)

	nodes, err := s.Query(context.Background(), domain.Rect{W: 10, H: 10})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if tree.calls != 3 {
		t.Fatalf("expected 3 provider calls, got %d", tree.calls)
	}
	if len(*pauses) != 2 {
		t.Fatalf("expected 2 pauses between attempts, got %d", len(*pauses))
	}
	for _, d := range *pauses {
		if d != 220*time.Millisecond {
			t.Fatalf("unexpected pause %v", d)
		}
	}
}

func TestSamplerQueryExhaustedReturnsEmptyNotError(t *testing.T) {
	tree := &stubTree{errs: []error{errors.New("stale"), errors.New("stale"), errors.New("stale")}}
	s, pauses := newTestSampler(tree, 3)

	nodes, err := s.Query(context.Background(), domain.Rect{W: 1, H: 1})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if nodes == nil || len(nodes) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", nodes)
	}
	if tree.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", tree.calls)
	}
	if len(*pauses) != 2 {
		t.Fatalf("expected no pause after the last attempt, got %d pauses", len(*pauses))
	}
}

func TestSamplerFirstNonEmptyWins(t *testing.T) {
	a := &stubElement{id: "a"}
	b := &stubElement{id: "b"}
	tree := &stubTree{responses: [][]ports.RawElement{{a}, {b}}}
	s, _ := newTestSampler(tree, 3)

	nodes, err := s.Query(context.Background(), domain.Rect{W: 1, H: 1})
	if err != nil {
		t.Fatal(err)
	}
	if tree.calls != 1 || nodes[0] != a {
		t.Fatalf("expected first response to win, calls=%d", tree.calls)
	}
}

func TestSamplerStopsOnContextCancel(t *testing.T) {
	tree := &stubTree{}
	s := &Sampler{Tree: tree, Attempts: 3, Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Query(ctx, domain.Rect{W: 1, H: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFindClickableAncestor(t *testing.T) {
	root := &stubElement{id: "root", clickable: true}
	mid := &stubElement{id: "mid", parent: root}
	leaf := &stubElement{id: "leaf", parent: mid}

	tests := []struct {
		name   string
		el     *stubElement
		maxUp  int
		wantID string
	}{
		{name: "found within depth", el: leaf, maxUp: 6, wantID: "root"},
		{name: "depth too small", el: leaf, maxUp: 1, wantID: ""},
		{name: "no parent", el: root, maxUp: 6, wantID: ""},
		{
			name:   "parent accessor fails",
			el:     &stubElement{id: "orphan", parent: root, fail: map[string]bool{"parent": true}},
			maxUp:  6,
			wantID: "",
		},
		{
			name:   "clickable accessor fails on ancestor",
			el:     &stubElement{parent: &stubElement{id: "broken", fail: map[string]bool{"clickable": true}, parent: root}},
			maxUp:  6,
			wantID: "root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindClickableAncestor(tt.el, tt.maxUp)
			if tt.wantID == "" {
				if got != nil {
					t.Fatalf("expected no ancestor, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected an ancestor")
			}
			if id, _ := got.ID(); id != tt.wantID {
				t.Fatalf("got ancestor %q, want %q", id, tt.wantID)
			}
		})
	}
}

func TestFindClickableAncestorTerminatesOnCycle(t *testing.T) {
	a := &stubElement{id: "a"}
	b := &stubElement{id: "b", parent: a}
	a.parent = b

	if got := FindClickableAncestor(a, 6); got != nil {
		t.Fatalf("expected nil on a non-clickable cycle, got %v", got)
	}
}
