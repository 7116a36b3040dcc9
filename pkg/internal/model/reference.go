package model

// MusicReleaseType 参照表：Album、EP、Single 等.
type MusicReleaseType struct {
	ID   string `gorm:"primaryKey;size:26"  json:"id"`
	Name string `gorm:"size:64;uniqueIndex" json:"name"`
}

func (MusicReleaseType) TableName() string { return "music_release_types" }

// MusicQuality 参照表：Lossless、320 等.
type MusicQuality struct {
	ID   string `gorm:"primaryKey;size:26"  json:"id"`
	Name string `gorm:"size:64;uniqueIndex" json:"name"`
}

func (MusicQuality) TableName() string { return "music_qualities" }

// DefaultMusicReleaseTypes db migrate 时写入的发行类型.
var DefaultMusicReleaseTypes = []string{
	"Album", "EP", "Single", "Compilation", "Soundtrack", "Live Album", "Remix", "Bootleg", "Mixtape",
}

// DefaultMusicQualities db migrate 时写入的音质.
var DefaultMusicQualities = []string{
	"Lossless", "24bit Lossless", "320", "V0 (VBR)", "V2 (VBR)", "256", "192",
}
