package textutil

import "testing"

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain stem", path: "Video2.MOV", want: "Video2"},
		{name: "separators become spaces", path: "my_holiday-trip.part.1.mp4", want: "My Holiday Trip Part 1"},
		{name: "directory stripped", path: "/media/in/clip 007.mkv", want: "Clip 007"},
		{name: "punctuation dropped", path: "clip(1).mp4", want: "Clip1"},
		{name: "uppercase normalized", path: "FINAL_CUT.mp4", want: "Final Cut"},
		{name: "unicode letters kept", path: "émission.mp4", want: "Émission"},
		{name: "empty path", path: "", want: "Untitled"},
		{name: "only separators", path: "___.mp4", want: "Untitled"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TitleFromFilename(tc.path); got != tc.want {
				t.Fatalf("TitleFromFilename(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
