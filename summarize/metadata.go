package summarize

import "context"

// VideoMetadata is the immutable result of a transcript extraction.
type VideoMetadata struct {
	Title           string
	ThumbnailURL    string
	DurationSeconds int64
	Transcript      string
}

// CaptionTrack points at one downloadable caption track.
type CaptionTrack struct {
	Language string
	URL      string
}

// VideoInfo is what the metadata backend knows about a video. Track slices
// preserve the backend's enumeration order; Subtitles holds human-authored
// tracks, AutoCaptions machine-generated ones.
type VideoInfo struct {
	Title           string
	ThumbnailURL    string
	DurationSeconds int64
	Subtitles       []CaptionTrack
	AutoCaptions    []CaptionTrack
}

type MetadataResolver interface {
	Resolve(ctx context.Context, videoID string) (VideoInfo, error)
}

type CaptionFetcher interface {
	Fetch(ctx context.Context, trackURL string) (string, error)
}
