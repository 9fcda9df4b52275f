package domain

import "time"

// CatalogEntry records one committed sample.
type CatalogEntry struct {
	Name      string      `json:"name"`
	Path      string      `json:"path"`
	SessionID string      `json:"session_id"`
	Mode      CaptureMode `json:"mode"`
	Rect      Rect        `json:"rect"`
	Package   string      `json:"package"`
	Activity  string      `json:"activity"`
	NodeCount int         `json:"node_count"`
	Warnings  Warnings    `json:"warnings"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewCatalogEntry derives the catalog row for a committed bundle.
func NewCatalogEntry(name, path string, b SampleBundle, at time.Time) CatalogEntry {
	return CatalogEntry{
		Name:      name,
		Path:      path,
		SessionID: b.SessionID,
		Mode:      b.Meta.Mode,
		Rect:      b.Meta.Rect,
		Package:   b.Meta.Package,
		Activity:  b.Meta.Activity,
		NodeCount: len(b.Ranked),
		Warnings:  b.Meta.Warnings,
		CreatedAt: at,
	}
}
