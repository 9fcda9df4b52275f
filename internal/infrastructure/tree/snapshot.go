// Package tree replays element trees dumped from a device. A snapshot is a
// JSON document with the foreground app and a nested node hierarchy; a node
// attribute that is null or missing reads as an accessor failure.
package tree

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// ErrUnavailable is returned by accessors for attributes absent from the
// snapshot.
var ErrUnavailable = errors.New("attribute unavailable")

// Document is the on-disk snapshot format.
type Document struct {
	Package  string `json:"package"`
	Activity string `json:"activity"`
	Root     *Node  `json:"root"`
}

// Node is one element of a snapshot.
type Node struct {
	ID            *string        `json:"id,omitempty"`
	Text          *string        `json:"text,omitempty"`
	Desc          *string        `json:"desc,omitempty"`
	Class         *string        `json:"cls,omitempty"`
	Package       *string        `json:"pkg,omitempty"`
	Clickable     *bool          `json:"clickable,omitempty"`
	Enabled       *bool          `json:"enabled,omitempty"`
	VisibleToUser *bool          `json:"visibleToUser,omitempty"`
	Bounds        *domain.Bounds `json:"bounds,omitempty"`
	Children      []*Node        `json:"children,omitempty"`
}

// Snapshot is a TreeProvider reading a Document from disk. The file is read
// on every query so a refreshed dump is picked up without restarting.
type Snapshot struct {
	Path string
}

// NewSnapshot returns a provider for the snapshot at path.
func NewSnapshot(path string) *Snapshot {
	return &Snapshot{Path: path}
}

// Load reads and parses the snapshot.
func (s *Snapshot) Load() (Document, error) {
	if s.Path == "" {
		return Document{}, errors.New("no tree snapshot configured")
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse snapshot %s: %w", s.Path, err)
	}
	return doc, nil
}

// QueryIntersecting returns the elements whose bounds intersect rect, in
// document order.
func (s *Snapshot) QueryIntersecting(ctx context.Context, rect domain.Rect) ([]ports.RawElement, error) {
	all, err := s.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.RawElement, 0, len(all))
	for _, el := range all {
		b, err := el.Bounds()
		if err != nil || !b.Intersects(rect) {
			continue
		}
		out = append(out, el)
	}
	return out, nil
}

// QueryAll returns every element in document order.
func (s *Snapshot) QueryAll(ctx context.Context) ([]ports.RawElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return Flatten(doc.Root), nil
}

// Foreground reports the app recorded in the snapshot.
func (s *Snapshot) Foreground(context.Context) (domain.AppInfo, error) {
	doc, err := s.Load()
	if err != nil {
		return domain.AppInfo{}, err
	}
	return domain.AppInfo{Package: doc.Package, Activity: doc.Activity}, nil
}

// Flatten walks root depth-first and links every element to its parent.
func Flatten(root *Node) []ports.RawElement {
	var out []ports.RawElement
	var walk func(n *Node, parent *element, depth int)
	walk = func(n *Node, parent *element, depth int) {
		if n == nil {
			return
		}
		el := &element{node: n, parent: parent, depth: depth}
		out = append(out, el)
		for _, child := range n.Children {
			walk(child, el, depth+1)
		}
	}
	walk(root, nil, 0)
	return out
}

type element struct {
	node   *Node
	parent *element
	depth  int
}

func str(v *string) (string, error) {
	if v == nil {
		return "", ErrUnavailable
	}
	return *v, nil
}

func flag(v *bool) (bool, error) {
	if v == nil {
		return false, ErrUnavailable
	}
	return *v, nil
}

func (e *element) ID() (string, error)          { return str(e.node.ID) }
func (e *element) Text() (string, error)        { return str(e.node.Text) }
func (e *element) Desc() (string, error)        { return str(e.node.Desc) }
func (e *element) ClassName() (string, error)   { return str(e.node.Class) }
func (e *element) PackageName() (string, error) { return str(e.node.Package) }
func (e *element) Clickable() (bool, error)     { return flag(e.node.Clickable) }
func (e *element) Enabled() (bool, error)       { return flag(e.node.Enabled) }
func (e *element) VisibleToUser() (bool, error) { return flag(e.node.VisibleToUser) }
func (e *element) Depth() (int, error)          { return e.depth, nil }

func (e *element) Bounds() (domain.Bounds, error) {
	if e.node.Bounds == nil {
		return domain.Bounds{}, ErrUnavailable
	}
	return *e.node.Bounds, nil
}

func (e *element) Parent() (ports.RawElement, error) {
	if e.parent == nil {
		return nil, nil
	}
	return e.parent, nil
}

var (
	_ ports.TreeProvider       = (*Snapshot)(nil)
	_ ports.ForegroundProvider = (*Snapshot)(nil)
	_ ports.TreeProvider       = Empty{}
)

// Empty is a TreeProvider for sessions without an element source. Samples
// still capture images and fall back to coordinate code.
type Empty struct{}

func (Empty) QueryIntersecting(context.Context, domain.Rect) ([]ports.RawElement, error) {
	return []ports.RawElement{}, nil
}

func (Empty) QueryAll(context.Context) ([]ports.RawElement, error) {
	return []ports.RawElement{}, nil
}
