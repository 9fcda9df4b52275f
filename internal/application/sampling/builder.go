package sampling

import (
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// Builder converts raw tree elements into descriptors.
type Builder struct {
	// AncestorDepth bounds the clickable-ancestor walk.
	AncestorDepth int
}

// NewBuilder returns a builder using the configured ancestor depth.
func NewBuilder(settings domain.SamplingSettings) Builder {
	depth := settings.AncestorDepth
	if depth <= 0 {
		depth = domain.DefaultAncestorDepth
	}
	return Builder{AncestorDepth: depth}
}

// Build describes every element and drops duplicates, keeping the order in
// which each key was first seen.
func (b Builder) Build(raw []ports.RawElement) []domain.ElementDescriptor {
	out := make([]domain.ElementDescriptor, 0, len(raw))
	for _, el := range raw {
		d, ok := b.Describe(el)
		if !ok {
			continue
		}
		out = append(out, d)
	}
	return Dedup(out)
}

// Describe snapshots one element. Each accessor failure leaves its field
// nil. ok is false only when the element has no readable bounds, since it
// could never be located again.
func (b Builder) Describe(el ports.RawElement) (domain.ElementDescriptor, bool) {
	if el == nil {
		return domain.ElementDescriptor{}, false
	}
	bounds, err := el.Bounds()
	if err != nil {
		return domain.ElementDescriptor{}, false
	}
	d := domain.ElementDescriptor{
		ID:            readString(el.ID),
		Text:          readString(el.Text),
		Desc:          readString(el.Desc),
		Class:         readString(el.ClassName),
		Package:       readString(el.PackageName),
		Clickable:     readBool(el.Clickable),
		Enabled:       readBool(el.Enabled),
		VisibleToUser: readBool(el.VisibleToUser),
		Depth:         readInt(el.Depth),
		Bounds:        bounds,
		Center:        bounds.Center(),
		Area:          bounds.Area(),
	}
	if d.NotClickable() {
		if anc := FindClickableAncestor(el, b.AncestorDepth); anc != nil {
			d.Ancestor = describeAncestor(anc)
		}
	}
	return d, true
}

func describeAncestor(el ports.RawElement) *domain.AncestorDescriptor {
	bounds, err := el.Bounds()
	if err != nil {
		return nil
	}
	return &domain.AncestorDescriptor{
		ID:        readString(el.ID),
		Text:      readString(el.Text),
		Desc:      readString(el.Desc),
		Class:     readString(el.ClassName),
		Clickable: readBool(el.Clickable),
		Bounds:    bounds,
		Center:    bounds.Center(),
	}
}

// Dedup keeps the first descriptor for each key. It is idempotent.
func Dedup(in []domain.ElementDescriptor) []domain.ElementDescriptor {
	seen := make(map[domain.DedupKey]struct{}, len(in))
	out := make([]domain.ElementDescriptor, 0, len(in))
	for _, d := range in {
		key := d.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

func readString(fn func() (string, error)) *string {
	v, err := fn()
	if err != nil {
		return nil
	}
	return &v
}

func readBool(fn func() (bool, error)) *bool {
	v, err := fn()
	if err != nil {
		return nil
	}
	return &v
}

func readInt(fn func() (int, error)) *int {
	v, err := fn()
	if err != nil {
		return nil
	}
	return &v
}
