package summarize

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrInvalidVideoURL = errors.New("invalid video URL")
	ErrVideoNotFound   = errors.New("video not found")
	ErrNoTranscript    = errors.New("no transcript or captions available for this video")
)

var videoURLRE = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)

// IsVideoURL reports whether raw points at a known video host. Pure string
// check, no I/O.
func IsVideoURL(raw string) bool {
	return videoURLRE.MatchString(raw)
}

// ExtractVideoID derives the video id from the common YouTube URL shapes:
// watch?v=, youtu.be/, /shorts/, /embed/ and /live/.
func ExtractVideoID(raw string) (string, error) {
	if !IsVideoURL(raw) {
		return "", ErrInvalidVideoURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidVideoURL
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.Trim(u.Path, "/")

	switch host {
	case "youtu.be":
		if id := firstSegment(path); id != "" {
			return id, nil
		}
	case "youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		for _, prefix := range []string{"shorts/", "embed/", "live/"} {
			if strings.HasPrefix(path, prefix) {
				if id := firstSegment(strings.TrimPrefix(path, prefix)); id != "" {
					return id, nil
				}
			}
		}
	}

	return "", ErrInvalidVideoURL
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
