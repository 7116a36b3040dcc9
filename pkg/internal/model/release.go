package model

import "time"

// 发行：把一个 Torrent 绑定到一个分组. torrent_id 唯一，一个种子只属于一个发行.

type MusicRelease struct {
	ID          string    `gorm:"primaryKey;size:26"          json:"id"`
	MusicID     string    `gorm:"size:26;not null;index"      json:"music_id"`
	TorrentID   string    `gorm:"size:26;not null;uniqueIndex" json:"torrent_id"`
	Title       string    `gorm:"size:1024;not null"          json:"title"`
	Description string    `gorm:"type:text"                   json:"description,omitempty"`
	Format      string    `gorm:"size:32;not null"            json:"format"`
	Encoding    string    `gorm:"size:32"                     json:"encoding,omitempty"`
	Quality     *string   `gorm:"size:26"                     json:"quality,omitempty"`
	Media       string    `gorm:"size:32"                     json:"media,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Music       *Music    `gorm:"foreignKey:MusicID"          json:"-"`
	Torrent     *Torrent  `gorm:"foreignKey:TorrentID"        json:"-"`
}

func (MusicRelease) TableName() string { return "music_releases" }

// VideoInfo movie/tv/anime 发行共用字段.
type VideoInfo struct {
	Title       string `gorm:"size:1024;not null" json:"title"`
	Description string `gorm:"type:text"          json:"description,omitempty"`
	Quality     string `gorm:"size:64"            json:"quality,omitempty"`
	Resolution  string `gorm:"size:32"            json:"resolution,omitempty"`
	Codec       string `gorm:"size:32"            json:"codec,omitempty"`
	Container   string `gorm:"size:32"            json:"container,omitempty"`
	Source      string `gorm:"size:32"            json:"source,omitempty"`
}

type MovieRelease struct {
	ID        string `gorm:"primaryKey;size:26"           json:"id"`
	MovieID   string `gorm:"size:26;not null;index"       json:"movie_id"`
	TorrentID string `gorm:"size:26;not null;uniqueIndex" json:"torrent_id"`
	VideoInfo `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
	Movie     *Movie    `gorm:"foreignKey:MovieID"           json:"-"`
	Torrent   *Torrent  `gorm:"foreignKey:TorrentID"         json:"-"`
}

func (MovieRelease) TableName() string { return "movie_releases" }

type TVRelease struct {
	ID        string `gorm:"primaryKey;size:26"           json:"id"`
	TVShowID  string `gorm:"column:tv_show_id;size:26;not null;index" json:"tv_show_id"`
	TorrentID string `gorm:"size:26;not null;uniqueIndex" json:"torrent_id"`
	VideoInfo `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
	TVShow    *TVShow   `gorm:"foreignKey:TVShowID"          json:"-"`
	Torrent   *Torrent  `gorm:"foreignKey:TorrentID"         json:"-"`
}

func (TVRelease) TableName() string { return "tv_releases" }

type AnimeRelease struct {
	ID        string `gorm:"primaryKey;size:26"           json:"id"`
	AnimeID   string `gorm:"size:26;not null;index"       json:"anime_id"`
	TorrentID string `gorm:"size:26;not null;uniqueIndex" json:"torrent_id"`
	VideoInfo `gorm:"embedded"`
	CreatedAt time.Time `json:"created_at"`
	Anime     *Anime    `gorm:"foreignKey:AnimeID"           json:"-"`
	Torrent   *Torrent  `gorm:"foreignKey:TorrentID"         json:"-"`
}

func (AnimeRelease) TableName() string { return "anime_releases" }

// PackageInfo 软件与游戏发行共用字段.
type PackageInfo struct {
	Title       string `gorm:"size:1024;not null" json:"title"`
	Description string `gorm:"type:text"          json:"description,omitempty"`
	Version     string `gorm:"size:64"            json:"version,omitempty"`
	Platform    string `gorm:"size:64"            json:"platform,omitempty"`
}

type SoftwareRelease struct {
	ID          string `gorm:"primaryKey;size:26"           json:"id"`
	SoftwareID  string `gorm:"size:26;not null;index"       json:"software_id"`
	TorrentID   string `gorm:"size:26;not null;uniqueIndex" json:"torrent_id"`
	PackageInfo `gorm:"embedded"`
	CreatedAt   time.Time `json:"created_at"`
	Software    *Software `gorm:"foreignKey:SoftwareID"  json:"-"`
	Torrent     *Torrent  `gorm:"foreignKey:TorrentID"   json:"-"`
}

func (SoftwareRelease) TableName() string { return "software_releases" }

type VideoGameRelease struct {
	ID          string `gorm:"primaryKey;size:26"           json:"id"`
	VideoGameID string `gorm:"size:26;not null;index"       json:"video_game_id"`
	TorrentID   string `gorm:"size:26;not null;uniqueIndex" json:"torrent_id"`
	PackageInfo `gorm:"embedded"`
	CreatedAt   time.Time  `json:"created_at"`
	VideoGame   *VideoGame `gorm:"foreignKey:VideoGameID" json:"-"`
	Torrent     *Torrent   `gorm:"foreignKey:TorrentID"   json:"-"`
}

func (VideoGameRelease) TableName() string { return "video_game_releases" }
