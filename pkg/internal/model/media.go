package model

import "github.com/yeisme/torrentvault/pkg/internal/types"

// Binding 媒体类型对应的分组表、发行表及发行表中指向分组的列.
type Binding struct {
	Group        any
	Release      any
	GroupTable   string
	ReleaseTable string
	GroupColumn  string
}

var bindings = map[types.MediaType]Binding{
	types.MediaMusic: {
		Group: &Music{}, Release: &MusicRelease{},
		GroupTable: "music", ReleaseTable: "music_releases", GroupColumn: "music_id",
	},
	types.MediaMovie: {
		Group: &Movie{}, Release: &MovieRelease{},
		GroupTable: "movies", ReleaseTable: "movie_releases", GroupColumn: "movie_id",
	},
	types.MediaTV: {
		Group: &TVShow{}, Release: &TVRelease{},
		GroupTable: "tv_shows", ReleaseTable: "tv_releases", GroupColumn: "tv_show_id",
	},
	types.MediaAnime: {
		Group: &Anime{}, Release: &AnimeRelease{},
		GroupTable: "anime", ReleaseTable: "anime_releases", GroupColumn: "anime_id",
	},
	types.MediaSoftware: {
		Group: &Software{}, Release: &SoftwareRelease{},
		GroupTable: "software", ReleaseTable: "software_releases", GroupColumn: "software_id",
	},
	types.MediaVideoGame: {
		Group: &VideoGame{}, Release: &VideoGameRelease{},
		GroupTable: "video_games", ReleaseTable: "video_game_releases", GroupColumn: "video_game_id",
	},
}

// BindingFor 返回媒体类型的表绑定.
func BindingFor(m types.MediaType) (Binding, bool) {
	b, ok := bindings[m]

	return b, ok
}
