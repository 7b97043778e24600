package summarize

import (
	"context"
	"strings"
)

// Extractor turns a video URL into metadata plus a transcript. Human-authored
// subtitles win over machine-generated captions; within each source only the
// first track is tried. No caching, every call re-fetches.
type Extractor struct {
	resolver MetadataResolver
	captions CaptionFetcher
}

func NewExtractor(resolver MetadataResolver, captions CaptionFetcher) *Extractor {
	return &Extractor{
		resolver: resolver,
		captions: captions,
	}
}

func (e *Extractor) Extract(ctx context.Context, rawURL string) (VideoMetadata, error) {
	if !IsVideoURL(rawURL) {
		return VideoMetadata{}, ErrInvalidVideoURL
	}
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return VideoMetadata{}, err
	}

	info, err := e.resolver.Resolve(ctx, videoID)
	if err != nil {
		return VideoMetadata{}, err
	}

	md := VideoMetadata{
		Title:           info.Title,
		ThumbnailURL:    info.ThumbnailURL,
		DurationSeconds: info.DurationSeconds,
	}
	if md.Title == "" {
		md.Title = "Unknown Title"
	}

	transcript := e.firstTrackText(ctx, info.Subtitles)
	if transcript == "" {
		transcript = e.firstTrackText(ctx, info.AutoCaptions)
	}
	if transcript == "" {
		return VideoMetadata{}, ErrNoTranscript
	}
	md.Transcript = transcript

	return md, nil
}

// firstTrackText fetches the first track of a source. A fetch or decode
// failure counts as "no transcript" so the caller can fall back.
func (e *Extractor) firstTrackText(ctx context.Context, tracks []CaptionTrack) string {
	if len(tracks) == 0 {
		return ""
	}
	text, err := e.captions.Fetch(ctx, tracks[0].URL)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(text)
}
