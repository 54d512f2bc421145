package download

import (
	"net/url"
	"strings"

	"github.com/ytget/ripvid/internal/model"
)

const fallbackBaseName = "download"

// SuggestFileName derives an output file name from a media URL: the video id
// query parameter when present, otherwise the last path segment, with an
// extension matching the download kind. The result is safe to join onto a
// directory; it never contains separators.
func SuggestFileName(rawURL string, kind model.DownloadKind) string {
	base := fallbackBaseName

	if u, err := url.Parse(rawURL); err == nil {
		if v := u.Query().Get("v"); v != "" {
			base = v
		} else if seg := lastPathSegment(u.Path); seg != "" {
			base = seg
		}
	}

	base = sanitizeBaseName(base)
	if base == "" {
		base = fallbackBaseName
	}

	if kind == model.KindAudio {
		return base + ".mp3"
	}
	return base + ".mp4"
}

func lastPathSegment(path string) string {
	segs := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segs) == 0 {
		return ""
	}
	seg := segs[len(segs)-1]
	// Strip an extension the source URL may carry; the kind decides ours.
	if dot := strings.LastIndexByte(seg, '.'); dot > 0 {
		seg = seg[:dot]
	}
	return seg
}

// sanitizeBaseName keeps characters that are safe in file names on every
// supported OS.
func sanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
