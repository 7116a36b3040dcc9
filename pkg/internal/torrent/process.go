package torrent

import "time"

// Processed 规范化后的种子，Path 由 blob 存储写入后填充.
type Processed struct {
	Bytes            []byte
	Hash             string
	InfoHash         string
	Files            []File
	TotalSize        int64
	OriginalFileName string
	Path             string
	ProcessedAt      time.Time
}

// Process 依次执行解码、去 announce、生成清单、重新编码和计算 hash.
func Process(buf []byte, fileName string, h Hasher) (*Processed, error) {
	s, err := Decode(buf)
	if err != nil {
		return nil, err
	}

	s = Sanitize(s)

	files, total, err := BuildManifest(s)
	if err != nil {
		return nil, err
	}

	canonical, err := Encode(s)
	if err != nil {
		return nil, err
	}

	infoHash, err := InfoHash(canonical)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if h.Clock != nil {
		now = h.Clock
	}

	return &Processed{
		Bytes:            canonical,
		Hash:             h.Hash(canonical),
		InfoHash:         infoHash,
		Files:            files,
		TotalSize:        total,
		OriginalFileName: fileName,
		ProcessedAt:      now(),
	}, nil
}
