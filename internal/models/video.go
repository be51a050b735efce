package models

import (
	"net/url"
	"path"
	"strings"
)

// Video is one scored entry of a search result set. Instances come from the
// search backend or the bundled fallback catalogue and are read-only for
// presentation.
type Video struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	VideoPath      string   `json:"video_path"`
	Duration       float64  `json:"duration"`
	Score          float64  `json:"score,omitempty"`
	Timestamp      float64  `json:"timestamp,omitempty"`
	Objects        []string `json:"objects,omitempty"`
	Text           []string `json:"text,omitempty"`
	DominantColors [][3]int `json:"dominant_colors,omitempty"`
}

// SubmissionName derives the identifier used when submitting this video to the
// contest server: the playable file's base name without its extension, falling
// back to the row ID. The result is deterministic for a given entry.
func (v Video) SubmissionName() string {
	p := v.VideoPath
	if u, err := url.Parse(p); err == nil && u.Path != "" {
		p = u.Path
	}

	base := path.Base(p)
	name := strings.TrimSuffix(base, path.Ext(base))
	if name == "" || name == "." || name == "/" {
		return v.ID
	}
	return name
}
