package download

import (
	"testing"

	"github.com/ytget/ripvid/internal/model"
)

func TestSuggestFileName(t *testing.T) {
	tests := []struct {
		name string
		url  string
		kind model.DownloadKind
		want string
	}{
		{
			name: "youtube watch id",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			kind: model.KindVideo,
			want: "dQw4w9WgXcQ.mp4",
		},
		{
			name: "short link path segment",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			kind: model.KindVideo,
			want: "dQw4w9WgXcQ.mp4",
		},
		{
			name: "audio extension",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			kind: model.KindAudio,
			want: "dQw4w9WgXcQ.mp3",
		},
		{
			name: "tiktok numeric id",
			url:  "https://www.tiktok.com/@user/video/7245039",
			kind: model.KindVideo,
			want: "7245039.mp4",
		},
		{
			name: "unsafe characters replaced",
			url:  "https://example.com/my clip (final)",
			kind: model.KindVideo,
			want: "my_clip__final.mp4",
		},
		{
			name: "source extension stripped",
			url:  "https://example.com/media/clip.webm",
			kind: model.KindVideo,
			want: "clip.mp4",
		},
		{
			name: "bare host falls back",
			url:  "https://example.com/",
			kind: model.KindVideo,
			want: "download.mp4",
		},
		{
			name: "unparseable url falls back",
			url:  "://not a url",
			kind: model.KindAudio,
			want: "download.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestFileName(tt.url, tt.kind); got != tt.want {
				t.Errorf("SuggestFileName(%q, %v) = %q, want %q", tt.url, tt.kind, got, tt.want)
			}
		})
	}
}
