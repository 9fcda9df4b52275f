package domain

import "strconv"

// ElementDescriptor is an immutable snapshot of one tree node at sample time.
// Nil pointer fields mean the provider could not report the value.
type ElementDescriptor struct {
	ID            *string             `json:"id"`
	Text          *string             `json:"text"`
	Desc          *string             `json:"desc"`
	Class         *string             `json:"cls"`
	Package       *string             `json:"pkg"`
	Clickable     *bool               `json:"clickable"`
	Enabled       *bool               `json:"enabled"`
	VisibleToUser *bool               `json:"visibleToUser"`
	Depth         *int                `json:"depth"`
	Bounds        Bounds              `json:"bounds"`
	Center        Point               `json:"center"`
	Area          int                 `json:"area"`
	Ancestor      *AncestorDescriptor `json:"clickableAncestor,omitempty"`
}

// AncestorDescriptor is the reduced shape captured for the nearest clickable
// ancestor of a non-clickable element.
type AncestorDescriptor struct {
	ID        *string `json:"id"`
	Text      *string `json:"text"`
	Desc      *string `json:"desc"`
	Class     *string `json:"cls"`
	Clickable *bool   `json:"clickable"`
	Bounds    Bounds  `json:"bounds"`
	Center    Point   `json:"center"`
}

// HasID reports whether a non-empty identifier was captured.
func (d ElementDescriptor) HasID() bool { return present(d.ID) }

// HasText reports whether non-empty visible text was captured.
func (d ElementDescriptor) HasText() bool { return present(d.Text) }

// HasDesc reports whether a non-empty description was captured.
func (d ElementDescriptor) HasDesc() bool { return present(d.Desc) }

// IsClickable is true only when the provider affirmatively reported clickable.
func (d ElementDescriptor) IsClickable() bool { return d.Clickable != nil && *d.Clickable }

// NotClickable is true only when the provider affirmatively reported not clickable.
func (d ElementDescriptor) NotClickable() bool { return d.Clickable != nil && !*d.Clickable }

// DedupKey identifies duplicate descriptors. Absent and empty strings
// compare equal.
type DedupKey struct {
	Bounds Bounds
	ID     string
	Text   string
	Desc   string
	Class  string
}

// Key is the deduplication key: bounds plus id, text, desc and class.
func (d ElementDescriptor) Key() DedupKey {
	return DedupKey{
		Bounds: d.Bounds,
		ID:     Deref(d.ID),
		Text:   Deref(d.Text),
		Desc:   Deref(d.Desc),
		Class:  Deref(d.Class),
	}
}

// RankedDescriptor pairs a descriptor with its ordering score.
type RankedDescriptor struct {
	ElementDescriptor
	Score int `json:"score"`
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatTriState renders an optional flag as true/false/null.
func FormatTriState(b *bool) string {
	if b == nil {
		return "null"
	}
	return strconv.FormatBool(*b)
}

func present(s *string) bool {
	return s != nil && *s != ""
}
