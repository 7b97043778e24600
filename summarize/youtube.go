package summarize

import (
	"context"
	"fmt"

	"google.golang.org/api/youtube/v3"
)

// Youtube resolves video metadata. Title, thumbnail and duration come from
// the Data API, caption track URLs from the Innertube player endpoint.
type Youtube struct {
	client    *youtube.Service
	innertube *InnerTube
}

func NewYoutube(client *youtube.Service, innertube *InnerTube) *Youtube {
	return &Youtube{
		client:    client,
		innertube: innertube,
	}
}

func (y *Youtube) Resolve(ctx context.Context, videoID string) (VideoInfo, error) {
	call := y.client.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return VideoInfo{}, fmt.Errorf("fetch video metadata: %w", err)
	}
	if len(response.Items) == 0 {
		return VideoInfo{}, ErrVideoNotFound
	}
	item := response.Items[0]

	info := VideoInfo{
		Title: item.Snippet.Title,
	}
	if item.ContentDetails != nil {
		info.DurationSeconds = parseISODuration(item.ContentDetails.Duration)
	}
	if thumbs := item.Snippet.Thumbnails; thumbs != nil {
		switch {
		case thumbs.High != nil:
			info.ThumbnailURL = thumbs.High.Url
		case thumbs.Medium != nil:
			info.ThumbnailURL = thumbs.Medium.Url
		case thumbs.Default != nil:
			info.ThumbnailURL = thumbs.Default.Url
		}
	}

	subtitles, autoCaptions, err := y.innertube.CaptionTracks(ctx, videoID)
	if err != nil {
		return VideoInfo{}, err
	}
	info.Subtitles = subtitles
	info.AutoCaptions = autoCaptions

	return info, nil
}

// parseISODuration converts the Data API's ISO-8601 durations (PT1H2M3S)
// to seconds.
func parseISODuration(s string) int64 {
	var total, num int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			num = num*10 + int64(c-'0')
		case c == 'D':
			total, num = total+num*86400, 0
		case c == 'H':
			total, num = total+num*3600, 0
		case c == 'M':
			total, num = total+num*60, 0
		case c == 'S':
			total, num = total+num, 0
		default:
			num = 0
		}
	}

	return total
}
