package model

import "time"

// Torrent 已入库的种子文件，创建后不再修改.
type Torrent struct {
	ID               string `gorm:"primaryKey;size:26"     json:"id"`
	Hash             string `gorm:"size:64;uniqueIndex"    json:"hash"`
	InfoHash         string `gorm:"size:40;index"          json:"info_hash"`
	FileSize         int64  `gorm:"not null"               json:"file_size"`
	OriginalFileName string `gorm:"size:512"               json:"original_file_name"`
	FilePath         string `gorm:"size:1024"              json:"file_path"`
	// Files 文件清单 JSON：[{"fileName": "...", "fileSize": 1}]
	Files      string    `gorm:"column:files;type:text" json:"files"`
	UploaderID string    `gorm:"size:64;index"          json:"uploader_id"`
	CreatedAt  time.Time `gorm:"index"                  json:"created_at"`
}

func (Torrent) TableName() string { return "torrents" }
