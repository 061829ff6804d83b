package media

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType sniffs the leading bytes of r. The declared type is kept when
// sniffing is inconclusive, so a browser-provided video type is not downgraded to
// application/octet-stream for containers the detector does not know.
func DetectContentType(r io.Reader, declared string) string {
	declared = strings.TrimSpace(declared)
	mt, err := mimetype.DetectReader(r)
	if err != nil || mt == nil {
		return declared
	}
	detected := mt.String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	if detected == "application/octet-stream" && declared != "" {
		return declared
	}
	return detected
}
