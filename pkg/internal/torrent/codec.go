// Package torrent 解析与规范化用户上传的 .torrent 文件.
//
// 处理顺序固定为 Decode -> Sanitize -> BuildManifest -> Encode -> Hash，
// Process 把这些步骤串起来，返回可直接入库的 Processed.
package torrent

import (
	"errors"
	"strings"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
)

// Structure 解码后的 bencode 字典，值为 int64、string、[]any 或 map[string]any.
type Structure map[string]any

// File 文件清单中的一项.
type File struct {
	Name string `json:"fileName"`
	Size int64  `json:"fileSize"`
}

// Decode 解析 bencode 缓冲区，要求顶层为字典且包含 info.files 列表.
func Decode(buf []byte) (Structure, error) {
	const op = "torrent.decode"

	if len(buf) == 0 {
		return nil, apperr.Codec(op, nil, "empty torrent payload")
	}

	var v any
	if err := bencode.Unmarshal(buf, &v); err != nil {
		return nil, apperr.Codec(op, err, "malformed bencode")
	}

	root, ok := v.(map[string]any)
	if !ok {
		return nil, apperr.Codec(op, nil, "top level is not a dictionary")
	}

	info, ok := root["info"].(map[string]any)
	if !ok {
		return nil, apperr.Codec(op, nil, "missing info dictionary")
	}

	if _, ok := info["files"].([]any); !ok {
		return nil, apperr.Codec(op, nil, "missing info.files list")
	}

	return Structure(root), nil
}

// Sanitize 去掉 announce（tracker 地址），返回浅拷贝，不修改入参.
func Sanitize(s Structure) Structure {
	out := make(Structure, len(s))
	for k, v := range s {
		if k == "announce" {
			continue
		}

		out[k] = v
	}

	return out
}

// BuildManifest 按原顺序列出 info.files，并返回总大小.
func BuildManifest(s Structure) ([]File, int64, error) {
	const op = "torrent.manifest"

	info, ok := s["info"].(map[string]any)
	if !ok {
		return nil, 0, apperr.Codec(op, nil, "missing info dictionary")
	}

	entries, ok := info["files"].([]any)
	if !ok {
		return nil, 0, apperr.Codec(op, nil, "missing info.files list")
	}

	files := make([]File, 0, len(entries))

	var total int64

	for i, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return nil, 0, apperr.Codec(op, nil, "files[%d] is not a dictionary", i)
		}

		length, ok := entry["length"].(int64)
		if !ok || length < 0 {
			return nil, 0, apperr.Codec(op, nil, "files[%d] has an invalid length", i)
		}

		name, err := joinPath(entry["path"])
		if err != nil {
			return nil, 0, apperr.Codec(op, err, "files[%d]", i)
		}

		files = append(files, File{Name: name, Size: length})
		total += length
	}

	return files, total, nil
}

var (
	errPathNotList    = errors.New("path is not a list")
	errPathNotStrings = errors.New("path segment is not a string")
)

func joinPath(v any) (string, error) {
	parts, ok := v.([]any)
	if !ok {
		return "", errPathNotList
	}

	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		seg, ok := p.(string)
		if !ok {
			return "", errPathNotStrings
		}

		segs = append(segs, seg)
	}

	return strings.Join(segs, "/"), nil
}

// Encode 规范化序列化，字典键按字节序排序.
func Encode(s Structure) ([]byte, error) {
	buf, err := bencode.Marshal(map[string]any(s))
	if err != nil {
		return nil, apperr.Codec("torrent.encode", err, "encode failed")
	}

	return buf, nil
}

// InfoHash 计算 BitTorrent v1 info-hash（info 字典的 SHA-1）.
func InfoHash(buf []byte) (string, error) {
	var top struct {
		Info bencode.Bytes `bencode:"info"`
	}
	if err := bencode.Unmarshal(buf, &top); err != nil {
		return "", apperr.Codec("torrent.infohash", err, "read info dictionary")
	}

	if len(top.Info) == 0 {
		return "", apperr.Codec("torrent.infohash", nil, "missing info dictionary")
	}

	return metainfo.HashBytes(top.Info).HexString(), nil
}
