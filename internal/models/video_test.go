package models

import "testing"

func TestVideoSubmissionName(t *testing.T) {
	tests := []struct {
		name     string
		video    Video
		expected string
	}{
		{
			name: "url with mp4 extension",
			video: Video{
				ID:        "42",
				VideoPath: "https://test-videos.co.uk/vids/sintel/mp4/h264/240/Sintel_240_10s_1MB.mp4",
			},
			expected: "Sintel_240_10s_1MB",
		},
		{
			name: "url with query string",
			video: Video{
				ID:        "42",
				VideoPath: "http://media.local/v/clip_00123.mp4?token=abc",
			},
			expected: "clip_00123",
		},
		{
			name: "relative path",
			video: Video{
				ID:        "42",
				VideoPath: "videos/00801.mp4",
			},
			expected: "00801",
		},
		{
			name:     "empty path falls back to id",
			video:    Video{ID: "42", VideoPath: ""},
			expected: "42",
		},
		{
			name:     "bare slash falls back to id",
			video:    Video{ID: "42", VideoPath: "/"},
			expected: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.video.SubmissionName()
			if got != tt.expected {
				t.Errorf("SubmissionName() = %q, want %q", got, tt.expected)
			}

			// Must be stable across calls.
			if again := tt.video.SubmissionName(); again != got {
				t.Errorf("SubmissionName() not deterministic: %q then %q", got, again)
			}
		})
	}
}
