package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID.
	TraceID  string `json:"trace_id,omitempty"`
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC）.
	OccurredAt time.Time `json:"occurred_at"`
	Version    string    `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// ReleaseCreatedPayload 一次成功入库.
type ReleaseCreatedPayload struct {
	MediaType    string   `json:"media_type"`
	TorrentID    string   `json:"torrent_id"`
	ReleaseID    string   `json:"release_id"`
	GroupID      string   `json:"group_id"`
	GroupCreated bool     `json:"group_created"`
	ArtistIDs    []string `json:"artist_ids,omitempty"`
	Hash         string   `json:"hash"`
	InfoHash     string   `json:"info_hash"`
	Path         string   `json:"path"`
	UploaderID   string   `json:"uploader_id,omitempty"`
	Size         int64    `json:"size"`
}

// BlobSweptPayload 一次清理的结果.
type BlobSweptPayload struct {
	Paths   []string `json:"paths"`
	Scanned int      `json:"scanned"`
	DryRun  bool     `json:"dry_run,omitempty"`
	// Before 只清理修改时间早于该时刻的文件.
	Before time.Time `json:"before"`
}
