package torrent_test

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/anacrolix/torrent/bencode"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/torrent"
)

func fixtureInfo() map[string]any {
	return map[string]any{
		"name":         "Abbey Road",
		"piece length": int64(16384),
		"pieces":       "01234567890123456789",
		"files": []any{
			map[string]any{"length": int64(120), "path": []any{"CD1", "01 Come Together.flac"}},
			map[string]any{"length": int64(80), "path": []any{"CD1", "02 Something.flac"}},
			map[string]any{"length": int64(4), "path": []any{"cover.jpg"}},
		},
	}
}

func fixture(t *testing.T) []byte {
	t.Helper()

	buf, err := bencode.Marshal(map[string]any{
		"announce":      "http://tracker.example/announce?passkey=secret",
		"comment":       "rip log included",
		"creation date": int64(1700000000),
		"info":          fixtureInfo(),
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	return buf
}

func TestDecodeRejectsMalformed(t *testing.T) {
	single, _ := bencode.Marshal(map[string]any{
		"info": map[string]any{"name": "a.iso", "length": int64(3)},
	})
	list, _ := bencode.Marshal([]any{"a", "b"})

	cases := map[string][]byte{
		"empty":        nil,
		"garbage":      []byte("not bencode"),
		"list":         list,
		"no info":      []byte("d8:announce3:urle"),
		"no files":     single,
		"truncated":    []byte("d4:infod5:filesl"),
		"files is int": []byte("d4:infod5:filesi3eee"),
	}

	for name, buf := range cases {
		if _, err := torrent.Decode(buf); !errors.Is(err, apperr.ErrCodec) {
			t.Errorf("%s: Decode err = %v, want CodecError", name, err)
		}
	}
}

func TestSanitizeStripsAnnounceOnly(t *testing.T) {
	s, err := torrent.Decode(fixture(t))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	clean := torrent.Sanitize(s)

	if _, ok := clean["announce"]; ok {
		t.Error("announce survived Sanitize")
	}

	if _, ok := s["announce"]; !ok {
		t.Error("Sanitize mutated its input")
	}

	for _, k := range []string{"comment", "creation date", "info"} {
		if !reflect.DeepEqual(clean[k], s[k]) {
			t.Errorf("field %q changed", k)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s, err := torrent.Decode(fixture(t))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	clean := torrent.Sanitize(s)

	first, err := torrent.Encode(clean)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	again, err := torrent.Decode(first)
	if err != nil {
		t.Fatalf("Decode(Encode): %v", err)
	}

	if !reflect.DeepEqual(again, clean) {
		t.Errorf("round trip changed structure:\n got %#v\nwant %#v", again, clean)
	}

	second, err := torrent.Encode(torrent.Sanitize(again))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if string(first) != string(second) {
		t.Error("encoding is not stable across cycles")
	}
}

func TestBuildManifest(t *testing.T) {
	s, err := torrent.Decode(fixture(t))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	files, total, err := torrent.BuildManifest(s)
	if err != nil {
		t.Fatalf("BuildManifest: %v", err)
	}

	want := []torrent.File{
		{Name: "CD1/01 Come Together.flac", Size: 120},
		{Name: "CD1/02 Something.flac", Size: 80},
		{Name: "cover.jpg", Size: 4},
	}

	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %+v", files)
	}

	var sum int64
	for _, f := range files {
		sum += f.Size
	}

	if total != sum || total != 204 {
		t.Errorf("total = %d, sum = %d", total, sum)
	}
}

func TestBuildManifestEmptyAndInvalid(t *testing.T) {
	files, total, err := torrent.BuildManifest(torrent.Structure{
		"info": map[string]any{"files": []any{}},
	})
	if err != nil || len(files) != 0 || total != 0 {
		t.Errorf("empty manifest = %v %d %v", files, total, err)
	}

	bad := []any{
		map[string]any{"length": int64(-1), "path": []any{"a"}},
		map[string]any{"length": "10", "path": []any{"a"}},
		map[string]any{"length": int64(1), "path": "a"},
		map[string]any{"length": int64(1), "path": []any{int64(7)}},
		"not a dict",
	}

	for i, entry := range bad {
		_, _, err := torrent.BuildManifest(torrent.Structure{
			"info": map[string]any{"files": []any{entry}},
		})
		if !errors.Is(err, apperr.ErrCodec) {
			t.Errorf("entry %d: err = %v, want CodecError", i, err)
		}
	}
}

func TestInfoHash(t *testing.T) {
	info, err := bencode.Marshal(fixtureInfo())
	if err != nil {
		t.Fatal(err)
	}

	sum := sha1.Sum(info)
	want := hex.EncodeToString(sum[:])

	got, err := torrent.InfoHash(fixture(t))
	if err != nil {
		t.Fatalf("InfoHash: %v", err)
	}

	if got != want {
		t.Errorf("InfoHash = %s, want %s", got, want)
	}
}

func TestProcessKeepsLooseTopLevelFields(t *testing.T) {
	cases := map[string]map[string]any{
		"announce-list as string": {"announce-list": "udp://x", "info": fixtureInfo()},
		"url-list as int":         {"url-list": int64(5), "info": fixtureInfo()},
	}

	info, err := bencode.Marshal(fixtureInfo())
	if err != nil {
		t.Fatal(err)
	}

	sum := sha1.Sum(info)
	want := hex.EncodeToString(sum[:])

	for name, top := range cases {
		buf, err := bencode.Marshal(top)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}

		p, err := torrent.Process(buf, "loose.torrent", torrent.Hasher{Secret: "s"})
		if err != nil {
			t.Errorf("%s: Process: %v", name, err)

			continue
		}

		if p.InfoHash != want {
			t.Errorf("%s: InfoHash = %s, want %s", name, p.InfoHash, want)
		}
	}
}

func TestHasher(t *testing.T) {
	buf := []byte("d4:infod5:filesleee")
	at := time.Unix(1700000123, 0)

	h := torrent.Hasher{Secret: "pepper", TimeBucketed: true, Clock: func() time.Time { return at }}

	raw := sha256.Sum256([]byte("pepper" + string(buf) + "1700000123"))
	if got := h.Hash(buf); got != hex.EncodeToString(raw[:]) {
		t.Errorf("time bucketed hash = %s", got)
	}

	later := h
	later.Clock = func() time.Time { return at.Add(time.Second) }

	if h.Hash(buf) == later.Hash(buf) {
		t.Error("time bucketed hashes in different seconds should differ")
	}

	content := torrent.Hasher{Secret: "pepper"}
	if content.Hash(buf) != content.Hash(buf) {
		t.Error("content-only hash must be deterministic")
	}

	plain := sha256.Sum256([]byte("pepper" + string(buf)))
	if got := content.Hash(buf); got != hex.EncodeToString(plain[:]) {
		t.Errorf("content-only hash = %s", got)
	}

	if !torrent.NewHasher("x").TimeBucketed {
		t.Error("NewHasher should default to time bucketed")
	}
}

func TestProcess(t *testing.T) {
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	h := torrent.Hasher{Secret: "s", TimeBucketed: true, Clock: func() time.Time { return at }}

	p, err := torrent.Process(fixture(t), "abbey.torrent", h)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if p.Hash != h.Hash(p.Bytes) {
		t.Error("hash is not computed over the canonical bytes")
	}

	if p.TotalSize != 204 || len(p.Files) != 3 || p.OriginalFileName != "abbey.torrent" {
		t.Errorf("unexpected processed torrent: %+v", p)
	}

	if !p.ProcessedAt.Equal(at) {
		t.Errorf("ProcessedAt = %s", p.ProcessedAt)
	}

	s, err := torrent.Decode(p.Bytes)
	if err != nil {
		t.Fatalf("canonical bytes do not decode: %v", err)
	}

	if _, ok := s["announce"]; ok {
		t.Error("canonical bytes still carry announce")
	}

	if _, err := torrent.Process([]byte("junk"), "x.torrent", h); !errors.Is(err, apperr.ErrCodec) {
		t.Errorf("Process(junk) err = %v", err)
	}
}
