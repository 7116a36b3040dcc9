package schema

import (
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

// Kind 实体类别.
type Kind string

const (
	KindGroup   Kind = "group"
	KindRelease Kind = "release"
	KindArtist  Kind = "artist"
)

// 参照集合名，与参照表同名.
const (
	RefMusicReleaseTypes = "music_release_types"
	RefMusicQualities    = "music_qualities"
)

var (
	text     = Rule{Kind: String, Tag: "min=1,max=1024"}
	longText = Rule{Kind: String, Tag: "max=65535"}
	ulidRef  = Rule{Kind: String, Tag: "ulid"}
	year     = Rule{Kind: Number, Tag: "release_year"}
)

type key struct {
	kind  Kind
	media types.MediaType
}

var (
	// Artist 艺人描述.
	Artist = &Descriptor{
		Name:         "artist",
		Required:     []string{"name"},
		Allowed:      []string{"name", "description"},
		Rules:        map[string]Rule{"name": text, "description": longText},
		ErrorMessage: "artist requires a name",
	}

	musicGroup = &Descriptor{
		Name:     "music",
		Required: []string{"title"},
		Allowed:  []string{"title", "year", "description", "music_release_type"},
		Rules: map[string]Rule{
			"title":              text,
			"year":               year,
			"description":        longText,
			"music_release_type": ulidRef,
		},
		Aliases:      map[string]string{"music_release_type": "musicReleaseType"},
		References:   map[string]string{"music_release_type": RefMusicReleaseTypes},
		ErrorMessage: "music requires a title",
	}

	movieGroup = &Descriptor{
		Name:         "movie",
		Required:     []string{"name", "year"},
		Allowed:      []string{"name", "description", "year"},
		Rules:        map[string]Rule{"name": text, "description": longText, "year": year},
		ErrorMessage: "movie requires a name and a year",
	}

	showRules = map[string]Rule{
		"name":        text,
		"description": longText,
		"season":      {Kind: String, Tag: "max=32"},
		"episode":     {Kind: String, Tag: "max=32"},
	}

	tvGroup = &Descriptor{
		Name:         "tv",
		Required:     []string{"name"},
		Allowed:      []string{"name", "description", "season", "episode"},
		Rules:        showRules,
		ErrorMessage: "tv show requires a name",
	}

	animeGroup = &Descriptor{
		Name:         "anime",
		Required:     []string{"name"},
		Allowed:      []string{"name", "description", "season", "episode"},
		Rules:        showRules,
		ErrorMessage: "anime requires a name",
	}

	softwareGroup = &Descriptor{
		Name:     "software",
		Required: []string{"name"},
		Allowed:  []string{"name", "description", "operating_system"},
		Rules: map[string]Rule{
			"name":             text,
			"description":      longText,
			"operating_system": {Kind: String, Tag: "max=64"},
		},
		Aliases:      map[string]string{"operating_system": "operatingSystem"},
		ErrorMessage: "software requires a name",
	}

	videoGameGroup = &Descriptor{
		Name:     "video_game",
		Required: []string{"name"},
		Allowed:  []string{"name", "description", "platform", "year"},
		Rules: map[string]Rule{
			"name":        text,
			"description": longText,
			"platform":    {Kind: String, Tag: "max=64"},
			"year":        year,
		},
		ErrorMessage: "video game requires a name",
	}

	musicRelease = &Descriptor{
		Name:     "music_release",
		Required: []string{"title", "format"},
		Allowed:  []string{"title", "description", "format", "encoding", "quality", "media"},
		Rules: map[string]Rule{
			"title":       text,
			"description": longText,
			"format":      {Kind: String, Tag: "min=1,max=32"},
			"encoding":    {Kind: String, Tag: "min=1,max=32"},
			"quality":     ulidRef,
			"media":       {Kind: String, Tag: "max=32"},
		},
		References:   map[string]string{"quality": RefMusicQualities},
		ErrorMessage: "album release requires a title and a format",
	}

	videoRelease = &Descriptor{
		Name:     "video_release",
		Required: []string{"title"},
		Allowed:  []string{"title", "description", "quality", "resolution", "codec", "container", "source"},
		Rules: map[string]Rule{
			"title":       text,
			"description": longText,
			"quality":     {Kind: String, Tag: "max=64"},
			"resolution":  {Kind: String, Tag: "max=32"},
			"codec":       {Kind: String, Tag: "max=32"},
			"container":   {Kind: String, Tag: "max=32"},
			"source":      {Kind: String, Tag: "max=32"},
		},
		ErrorMessage: "video release requires a title",
	}

	packageRules = map[string]Rule{
		"title":       text,
		"description": longText,
		"version":     {Kind: String, Tag: "max=64"},
		"platform":    {Kind: String, Tag: "max=64"},
	}

	softwareRelease = &Descriptor{
		Name:         "software_release",
		Required:     []string{"title"},
		Allowed:      []string{"title", "description", "version", "platform"},
		Rules:        packageRules,
		ErrorMessage: "software release requires a title",
	}

	videoGameRelease = &Descriptor{
		Name:         "video_game_release",
		Required:     []string{"title"},
		Allowed:      []string{"title", "description", "version", "platform"},
		Rules:        packageRules,
		ErrorMessage: "video game release requires a title",
	}

	registry = map[key]*Descriptor{
		{KindGroup, types.MediaMusic}:     musicGroup,
		{KindGroup, types.MediaMovie}:     movieGroup,
		{KindGroup, types.MediaTV}:        tvGroup,
		{KindGroup, types.MediaAnime}:     animeGroup,
		{KindGroup, types.MediaSoftware}:  softwareGroup,
		{KindGroup, types.MediaVideoGame}: videoGameGroup,

		{KindRelease, types.MediaMusic}:     musicRelease,
		{KindRelease, types.MediaMovie}:     videoRelease,
		{KindRelease, types.MediaTV}:        videoRelease,
		{KindRelease, types.MediaAnime}:     videoRelease,
		{KindRelease, types.MediaSoftware}:  softwareRelease,
		{KindRelease, types.MediaVideoGame}: videoGameRelease,
	}
)

// Lookup 按 (类别, 媒体类型) 取描述，艺人不区分媒体类型.
func Lookup(kind Kind, media types.MediaType) (*Descriptor, bool) {
	if kind == KindArtist {
		return Artist, true
	}

	d, ok := registry[key{kind, media}]

	return d, ok
}

// Group 返回分组描述.
func Group(media types.MediaType) (*Descriptor, bool) {
	return Lookup(KindGroup, media)
}

// Release 返回发行信息描述.
func Release(media types.MediaType) (*Descriptor, bool) {
	return Lookup(KindRelease, media)
}
