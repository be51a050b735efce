package query

import (
	"fmt"
	"strconv"

	"clipseek/internal/criteria"
)

// Request is the payload of POST /search/multimodal. Fields absent from the
// criteria are absent from the encoded payload; no null placeholders are sent.
type Request struct {
	Text      string    `json:"text,omitempty"`
	Color     []int     `json:"color,omitempty"`
	Objects   []string  `json:"objects,omitempty"`
	Words     string    `json:"words,omitempty"`
	StartTime *int      `json:"start_time,omitempty"`
	EndTime   *int      `json:"end_time,omitempty"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// HexToRGB parses a #rrggbb swatch value into three 8-bit channel values.
func HexToRGB(hex string) ([]int, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return nil, fmt.Errorf("invalid hex color: %q", hex)
	}

	rgb := make([]int, 3)
	for i := 0; i < 3; i++ {
		channel, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color: %q", hex)
		}
		rgb[i] = int(channel)
	}
	return rgb, nil
}

// Translate maps built criteria onto the backend request payload: the hex
// color becomes an RGB triplet, interval bounds become elapsed seconds, and
// text, objects, words and embedding pass through under their request names.
// The reference media filename stays out of the payload; the backend derives
// the embedding from it through a separate upload.
func Translate(c criteria.Criteria) (Request, error) {
	var req Request

	req.Text = c.Text
	req.Objects = c.Objects
	req.Words = c.Words
	req.Embedding = c.Embedding

	if c.Color != "" {
		rgb, err := HexToRGB(c.Color)
		if err != nil {
			return Request{}, fmt.Errorf("translating color: %w", err)
		}
		req.Color = rgb
	}

	if c.Interval != nil {
		from, to := c.Interval.Seconds()
		req.StartTime = &from
		req.EndTime = &to
	}

	return req, nil
}
