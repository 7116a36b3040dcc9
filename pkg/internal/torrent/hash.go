package torrent

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Hasher 生成种子内容标识.
//
// TimeBucketed 为 true 时把调用时刻的 Unix 秒拼接进摘要，与已入库的历史 hash 保持一致；
// 相同内容在不同秒上传会得到不同 hash. 关闭后 hash 只由 Secret 与内容决定.
type Hasher struct {
	Secret       string
	TimeBucketed bool
	// Clock 为空时使用 time.Now.
	Clock func() time.Time
}

// NewHasher 返回默认混入时间桶的 Hasher.
func NewHasher(secret string) Hasher {
	return Hasher{Secret: secret, TimeBucketed: true}
}

// Hash 计算 hex(sha256(secret ‖ bytes ‖ unix-seconds)).
func (h Hasher) Hash(buf []byte) string {
	if !h.TimeBucketed {
		return Sum(h.Secret, buf, -1)
	}

	now := time.Now
	if h.Clock != nil {
		now = h.Clock
	}

	return Sum(h.Secret, buf, now().Unix())
}

// Sum 是无状态的摘要函数，bucket < 0 表示不混入时间.
func Sum(secret string, buf []byte, bucket int64) string {
	d := sha256.New()
	d.Write([]byte(secret))
	d.Write(buf)

	if bucket >= 0 {
		d.Write([]byte(strconv.FormatInt(bucket, 10)))
	}

	return hex.EncodeToString(d.Sum(nil))
}
