package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// YouTube Innertube /player endpoint, used to list caption tracks. The
// public Data API exposes track metadata but not downloadable URLs, the
// ANDROID player client does.

const (
	innertubePlayerURL = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion   = "20.10.38"
	ytAndroidUA        = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"
)

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type innertubePlayerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []innertubeCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type innertubeCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type InnerTube struct {
	client *http.Client
}

func NewInnerTube() *InnerTube {
	return &InnerTube{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// CaptionTracks lists the caption tracks of a video, human-authored and
// auto-generated separately, in the order the backend enumerates them.
func (it *InnerTube) CaptionTracks(ctx context.Context, videoID string) (subtitles, autoCaptions []CaptionTrack, err error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, innertubePlayerURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := it.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("innertube player: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("innertube player: HTTP %d", resp.StatusCode)
	}

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, nil, fmt.Errorf("decode player response: %w", err)
	}

	if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Status == "ERROR" {
		return nil, nil, fmt.Errorf("%w: %s", ErrVideoNotFound, playerResp.PlayabilityStatus.Reason)
	}
	if playerResp.Captions == nil {
		return []CaptionTrack{}, []CaptionTrack{}, nil
	}

	for _, track := range playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
		ct := CaptionTrack{Language: track.LanguageCode, URL: track.BaseURL}
		if track.Kind == "asr" {
			autoCaptions = append(autoCaptions, ct)
		} else {
			subtitles = append(subtitles, ct)
		}
	}

	return subtitles, autoCaptions, nil
}
