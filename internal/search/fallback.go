package search

import "clipseek/internal/models"

// FallbackVideos is the fixed bundled result set displayed whenever the live
// backend is unreachable, so the result area never renders blank.
func FallbackVideos() []models.Video {
	return []models.Video{
		{
			ID:        "1",
			Title:     "Big Buck Bunny (240p, 10s)",
			VideoPath: "https://test-videos.co.uk/vids/bigbuckbunny/mp4/h264/240/Big_Buck_Bunny_240_10s_1MB.mp4",
			Duration:  10,
			Score:     0.97,
			Timestamp: 2.3,
			Objects:   []string{"bunny", "butterfly"},
			DominantColors: [][3]int{
				{162, 212, 248},
				{124, 168, 92},
				{236, 196, 112},
			},
		},
		{
			ID:        "2",
			Title:     "Sintel Trailer (240p, 10s)",
			VideoPath: "https://test-videos.co.uk/vids/sintel/mp4/h264/240/Sintel_240_10s_1MB.mp4",
			Duration:  10,
			Score:     0.91,
			Timestamp: 5.1,
			Objects:   []string{"dragon", "girl"},
			Text:      []string{"Sintel"},
			DominantColors: [][3]int{
				{42, 38, 34},
				{176, 108, 60},
				{208, 184, 160},
			},
		},
		{
			ID:        "3",
			Title:     "Tears of Steel (240p, 10s)",
			VideoPath: "https://test-videos.co.uk/vids/tears_of_steel/mp4/h264/240/Tears_of_Steel_240_10s_1MB.mp4",
			Duration:  10,
			Score:     0.89,
			Timestamp: 6.8,
			Objects:   []string{"robot", "street"},
			DominantColors: [][3]int{
				{56, 64, 78},
				{104, 112, 128},
				{200, 152, 96},
			},
		},
		{
			ID:        "4",
			Title:     "Big Buck Bunny (480p, 10s)",
			VideoPath: "https://test-videos.co.uk/vids/bigbuckbunny/mp4/h264/480/Big_Buck_Bunny_480_10s_2MB.mp4",
			Duration:  10,
			Score:     0.95,
			Timestamp: 1.7,
			Objects:   []string{"bunny", "tree"},
			DominantColors: [][3]int{
				{150, 200, 240},
				{110, 160, 80},
				{230, 190, 100},
			},
		},
	}
}
