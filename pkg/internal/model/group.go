package model

import "time"

// 分组（专辑、电影、剧集等）. 由流水线惰性创建，从不更新或删除.

type Music struct {
	ID               string    `gorm:"primaryKey;size:26"                  json:"id"`
	Title            string    `gorm:"size:1024;not null"                  json:"title"`
	Year             *int      `json:"year,omitempty"`
	Description      string    `gorm:"type:text"                           json:"description,omitempty"`
	MusicReleaseType *string   `gorm:"column:music_release_type;size:26"   json:"music_release_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Music) TableName() string { return "music" }

type Movie struct {
	ID          string    `gorm:"primaryKey;size:26" json:"id"`
	Name        string    `gorm:"size:1024;not null" json:"name"`
	Description string    `gorm:"type:text"          json:"description,omitempty"`
	Year        int       `gorm:"not null"           json:"year"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Movie) TableName() string { return "movies" }

// Show 剧集与动画共用的分组字段.
type Show struct {
	ID          string    `gorm:"primaryKey;size:26" json:"id"`
	Name        string    `gorm:"size:1024;not null" json:"name"`
	Description string    `gorm:"type:text"          json:"description,omitempty"`
	Season      string    `gorm:"size:32"            json:"season,omitempty"`
	Episode     string    `gorm:"size:32"            json:"episode,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TVShow struct {
	Show `gorm:"embedded"`
}

func (TVShow) TableName() string { return "tv_shows" }

type Anime struct {
	Show `gorm:"embedded"`
}

func (Anime) TableName() string { return "anime" }

type Software struct {
	ID              string    `gorm:"primaryKey;size:26" json:"id"`
	Name            string    `gorm:"size:1024;not null" json:"name"`
	Description     string    `gorm:"type:text"          json:"description,omitempty"`
	OperatingSystem string    `gorm:"size:64"            json:"operating_system,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Software) TableName() string { return "software" }

type VideoGame struct {
	ID          string    `gorm:"primaryKey;size:26" json:"id"`
	Name        string    `gorm:"size:1024;not null" json:"name"`
	Description string    `gorm:"type:text"          json:"description,omitempty"`
	Platform    string    `gorm:"size:64"            json:"platform,omitempty"`
	Year        *int      `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (VideoGame) TableName() string { return "video_games" }

// Artist 艺人，仅音乐使用.
type Artist struct {
	ID          string    `gorm:"primaryKey;size:26" json:"id"`
	Name        string    `gorm:"size:1024;index"    json:"name"`
	Description string    `gorm:"type:text"          json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Artist) TableName() string { return "artists" }

// MusicArtist 音乐与艺人的关联，IsPrimary 属于关联而不是艺人本身.
type MusicArtist struct {
	MusicID   string  `gorm:"primaryKey;size:26"                           json:"music_id"`
	ArtistID  string  `gorm:"primaryKey;size:26;index"                     json:"artist_id"`
	IsPrimary bool    `gorm:"not null;default:false"                       json:"is_primary"`
	Music     *Music  `gorm:"foreignKey:MusicID;constraint:OnDelete:CASCADE" json:"-"`
	Artist    *Artist `gorm:"foreignKey:ArtistID"                          json:"-"`
}

func (MusicArtist) TableName() string { return "music_artists" }
