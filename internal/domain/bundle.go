package domain

import (
	"strings"
	"time"
)

// Artifact file names inside a sample directory.
const (
	FileScreen   = "screen.png"
	FileCrop     = "crop.png"
	FileMeta     = "meta.json"
	FileNodes    = "nodes.json"
	FileCode     = "code.txt"
	FileTreeFlat = "tree_flat.json"
)

// DeviceInfo describes the display the sample was taken on.
type DeviceInfo struct {
	Brand   string   `json:"brand"`
	Model   string   `json:"model"`
	Release string   `json:"release"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Density *float64 `json:"density"`
}

// Screen returns the display extent.
func (d DeviceInfo) Screen() Size {
	return Size{Width: d.Width, Height: d.Height}
}

// AppInfo identifies the foreground application.
type AppInfo struct {
	Package  string `json:"package"`
	Activity string `json:"activity"`
}

// Warnings are non-fatal conditions surfaced with a sample.
type Warnings struct {
	CropProbablyBlack bool `json:"cropProbablyBlack"`
	EmptyNodes        bool `json:"emptyNodes"`
}

// Metadata is written to meta.json.
type Metadata struct {
	Time      time.Time   `json:"time"`
	SessionID string      `json:"sessionId"`
	Mode      CaptureMode `json:"mode"`
	Point     *Point      `json:"point"`
	Rect      Rect        `json:"rect"`
	Package   string      `json:"package"`
	Activity  string      `json:"activity"`
	Device    DeviceInfo  `json:"device"`
	Warnings  Warnings    `json:"warnings"`
}

// SampleBundle is the aggregate artifact of one sampling pass. The images
// themselves live only on disk under Dir once staged.
type SampleBundle struct {
	SessionID string
	Dir       string
	Meta      Metadata
	Ranked    []RankedDescriptor
	Code      string
	TreeFlat  []ElementDescriptor
}

// Files lists the artifact names the bundle is expected to contain.
func (b SampleBundle) Files() []string {
	files := []string{FileScreen, FileCrop, FileMeta, FileNodes, FileCode}
	if b.TreeFlat != nil {
		files = append(files, FileTreeFlat)
	}
	return files
}

// ScratchDirName keys a scratch directory by capture time. The session id
// suffix keeps two captures within the same millisecond apart.
func ScratchDirName(at time.Time, sessionID string) string {
	name := strings.ReplaceAll(at.UTC().Format(ScratchDirFormat), ".", "-")
	if len(sessionID) >= 8 {
		name += "_" + sessionID[:8]
	}
	return name
}
