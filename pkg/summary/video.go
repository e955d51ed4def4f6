package summary

import (
	"fmt"
	"net/url"
	"strings"
)

type VideoKind string

const (
	VideoYouTube     VideoKind = "youtube"
	VideoVimeo       VideoKind = "vimeo"
	VideoOther       VideoKind = "other"
	VideoUnavailable VideoKind = "unavailable"
)

func HasVideoURL(ref string) bool {
	return ref != "" && ref != NotAvailable
}

// ClassifyVideo picks the icon family for a source link.
func ClassifyVideo(ref string) VideoKind {
	if !HasVideoURL(ref) {
		return VideoUnavailable
	}
	switch {
	case strings.Contains(ref, "youtube.com"), strings.Contains(ref, "youtu.be"):
		return VideoYouTube
	case strings.Contains(ref, "vimeo.com"):
		return VideoVimeo
	default:
		return VideoOther
	}
}

// YouTubeVideoID extracts the video id from watch, short, embed and youtu.be links.
func YouTubeVideoID(youtubeURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(youtubeURL))
	if err != nil {
		return "", err
	}

	var videoID string

	if strings.Contains(parsed.Host, "youtube.com") {
		videoID = parsed.Query().Get("v")
	}

	if strings.Contains(parsed.Host, "youtu.be") {
		videoID = strings.TrimPrefix(parsed.Path, "/")
	}

	if strings.Contains(parsed.Path, "/embed/") {
		videoID = strings.TrimPrefix(parsed.Path, "/embed/")
	}

	if strings.Contains(parsed.Path, "/shorts/") {
		videoID = strings.TrimPrefix(parsed.Path, "/shorts/")
	}

	if videoID == "" {
		return "", fmt.Errorf("could not extract video ID from URL: %s", youtubeURL)
	}

	videoID = strings.Split(videoID, "/")[0]

	return videoID, nil
}

// YouTubeThumbnail returns the preview image for a YouTube link, or "" for
// anything else.
func YouTubeThumbnail(ref string) string {
	if ClassifyVideo(ref) != VideoYouTube {
		return ""
	}
	id, err := YouTubeVideoID(ref)
	if err != nil {
		return ""
	}
	return "https://img.youtube.com/vi/" + url.PathEscape(id) + "/hqdefault.jpg"
}
