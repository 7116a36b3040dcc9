package model

import (
	crand "crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(crand.Reader, 0)
)

// NewID 生成 26 位 ULID. 同一毫秒内单调递增.
func NewID() string {
	return NewIDAt(time.Now())
}

// NewIDAt 以指定时间生成 ULID.
func NewIDAt(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
