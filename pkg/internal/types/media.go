package types

import "fmt"

// MediaType 发行的媒体类型.
type MediaType string

const (
	MediaMusic     MediaType = "music"
	MediaMovie     MediaType = "movie"
	MediaTV        MediaType = "tv"
	MediaAnime     MediaType = "anime"
	MediaSoftware  MediaType = "software"
	MediaVideoGame MediaType = "video-game"
)

// MediaTypes 所有受支持的媒体类型.
var MediaTypes = []MediaType{MediaMusic, MediaMovie, MediaTV, MediaAnime, MediaSoftware, MediaVideoGame}

// ParseMediaType 解析 torrentType 字段.
func ParseMediaType(s string) (MediaType, error) {
	for _, m := range MediaTypes {
		if string(m) == s {
			return m, nil
		}
	}

	return "", fmt.Errorf("unknown torrent type %q", s)
}

// FormKey 返回 release 表单里承载分组的键，例如 video-game -> videoGame.
func (m MediaType) FormKey() string {
	if m == MediaVideoGame {
		return "videoGame"
	}

	return string(m)
}

// IsVideo movie/tv/anime 共用视频发行结构.
func (m MediaType) IsVideo() bool {
	return m == MediaMovie || m == MediaTV || m == MediaAnime
}
