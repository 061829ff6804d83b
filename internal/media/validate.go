package media

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Rejection explains why a file was not added.
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// TypeOf maps a MIME type onto a media type by its prefix.
func TypeOf(contentType string) (Type, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return TypeImage, true
	case strings.HasPrefix(ct, "video/"):
		return TypeVideo, true
	default:
		return "", false
	}
}

// FormatSize renders a byte count for user-facing messages, e.g. "10 MB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func (l *List) checkSize(f File) string {
	t, _ := TypeOf(f.ContentType)
	limit := l.limits.MaxImageSize
	if t == TypeVideo {
		limit = l.limits.MaxVideoSize
	}
	if limit > 0 && f.Size > limit {
		return fmt.Sprintf("%s is too large (%s). Maximum %s size is %s", f.Name, FormatSize(f.Size), t, FormatSize(limit))
	}
	return ""
}

func unsupportedTypeMessage(f File) string {
	if f.ContentType == "" {
		return fmt.Sprintf("%s has an unknown file type; only images and videos are allowed", f.Name)
	}
	return fmt.Sprintf("%s has unsupported type %s; only images and videos are allowed", f.Name, f.ContentType)
}
