package types

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
)

// ReleaseForm 上传表单中 release 字段的 JSON 结构.
//
// 分组可以放在 group 中，也可以放在与 torrentType 同名的键中（music、movie、videoGame 等），
// 取值为已有分组 id 字符串，或新分组的描述对象.
type ReleaseForm struct {
	TorrentType string           `json:"torrentType"`
	Group       any              `json:"group,omitempty"`
	Music       any              `json:"music,omitempty"`
	Movie       any              `json:"movie,omitempty"`
	TV          any              `json:"tv,omitempty"`
	Anime       any              `json:"anime,omitempty"`
	Software    any              `json:"software,omitempty"`
	VideoGame   any              `json:"videoGame,omitempty"`
	Info        map[string]any   `json:"info"`
	Artists     []map[string]any `json:"artists,omitempty"`
}

// GroupRef 分组选择：ID 与 Descriptor 二选一.
type GroupRef struct {
	ID         string
	Descriptor map[string]any
}

// IsID 是否引用已有分组.
func (g GroupRef) IsID() bool {
	return g.ID != ""
}

// ArtistRef 艺人引用：ID 与 Descriptor 二选一，Primary 标记主艺人.
type ArtistRef struct {
	ID         string
	Descriptor map[string]any
	Primary    bool
}

// Submission 一次上传. Torrent 为原始字节，UploaderID 由身份头注入.
type Submission struct {
	MediaType  MediaType
	Torrent    []byte
	FileName   string
	Group      GroupRef
	Info       map[string]any
	Artists    []ArtistRef
	UploaderID string
}

// Result 摄取成功后返回的各实体 id.
type Result struct {
	MediaType    MediaType `json:"mediaType"`
	TorrentID    string    `json:"torrentId"`
	ReleaseID    string    `json:"releaseId"`
	GroupID      string    `json:"groupId"`
	GroupCreated bool      `json:"groupCreated"`
	ArtistIDs    []string  `json:"artistIds,omitempty"`
	Hash         string    `json:"hash"`
	InfoHash     string    `json:"infoHash"`
	Path         string    `json:"path"`
}

// ParseReleaseForm 解析 release JSON.
func ParseReleaseForm(raw []byte) (*ReleaseForm, error) {
	var f ReleaseForm
	if err := sonic.Unmarshal(raw, &f); err != nil {
		return nil, apperr.Validation("release.parse", "release is not valid JSON: "+err.Error())
	}

	return &f, nil
}

// ToSubmission 把表单转换为 Submission，torrent 字节与上传者由调用方补齐.
func (f *ReleaseForm) ToSubmission() (*Submission, error) {
	const op = "release.parse"

	media, err := ParseMediaType(f.TorrentType)
	if err != nil {
		return nil, apperr.Validation(op, err.Error())
	}

	selector := f.Group
	if selector == nil {
		selector = f.groupFor(media)
	}

	group, err := parseGroupRef(selector)
	if err != nil {
		return nil, apperr.Validation(op, err.Error())
	}

	sub := &Submission{MediaType: media, Group: group, Info: f.Info}
	if sub.Info == nil {
		sub.Info = map[string]any{}
	}

	for i, raw := range f.Artists {
		a, err := parseArtistRef(raw)
		if err != nil {
			return nil, apperr.Validation(op, fmt.Sprintf("artists[%d]: %s", i, err.Error()))
		}

		sub.Artists = append(sub.Artists, a)
	}

	return sub, nil
}

func (f *ReleaseForm) groupFor(m MediaType) any {
	switch m {
	case MediaMusic:
		return f.Music
	case MediaMovie:
		return f.Movie
	case MediaTV:
		return f.TV
	case MediaAnime:
		return f.Anime
	case MediaSoftware:
		return f.Software
	case MediaVideoGame:
		return f.VideoGame
	default:
		return nil
	}
}

func parseGroupRef(v any) (GroupRef, error) {
	switch g := v.(type) {
	case string:
		if g == "" {
			return GroupRef{}, fmt.Errorf("group id is empty")
		}

		return GroupRef{ID: g}, nil
	case map[string]any:
		if id, ok := g["id"].(string); ok && len(g) == 1 {
			return GroupRef{ID: id}, nil
		}

		return GroupRef{Descriptor: g}, nil
	case nil:
		return GroupRef{}, fmt.Errorf("group is missing")
	default:
		return GroupRef{}, fmt.Errorf("group must be an id or an object")
	}
}

func parseArtistRef(m map[string]any) (ArtistRef, error) {
	var ref ArtistRef

	if p, ok := m["primary"]; ok {
		b, ok := p.(bool)
		if !ok {
			return ref, fmt.Errorf("primary must be a boolean")
		}

		ref.Primary = b
	}

	if id, ok := m["id"]; ok {
		s, ok := id.(string)
		if !ok || s == "" {
			return ref, fmt.Errorf("id must be a non-empty string")
		}

		if _, hasName := m["name"]; hasName {
			return ref, fmt.Errorf("id and name are mutually exclusive")
		}

		ref.ID = s

		return ref, nil
	}

	ref.Descriptor = make(map[string]any, len(m))
	for k, v := range m {
		if k != "primary" {
			ref.Descriptor[k] = v
		}
	}

	return ref, nil
}
