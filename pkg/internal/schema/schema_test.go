package schema_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/schema"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

const qualityID = "01HZY3K4Q9V2T6M8N0P1R3S5T7"

func TestFilterRequiredAndAllowed(t *testing.T) {
	d := &schema.Descriptor{
		Name:         "abc",
		Required:     []string{"a", "b"},
		Allowed:      []string{"a", "b", "c"},
		ErrorMessage: "a and b are required",
	}

	_, err := d.Filter(map[string]any{"a": 1, "c": 3})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	if !strings.Contains(err.Error(), "a and b are required") {
		t.Errorf("message = %q", err.Error())
	}

	got, err := d.Filter(map[string]any{"a": 1, "b": 2, "d": 4})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}

	want := schema.Fields{{Key: "a", Value: 1}, {Key: "b", Value: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %+v, want %+v", got, want)
	}

	if _, ok := got.Get("d"); ok {
		t.Error("unknown key d leaked through")
	}
}

func TestFilterOrderFollowsAllowed(t *testing.T) {
	d := &schema.Descriptor{Name: "o", Allowed: []string{"z", "y", "x"}}

	got, err := d.Filter(map[string]any{"x": 1, "y": 2, "z": 3})
	if err != nil {
		t.Fatal(err)
	}

	want := schema.Fields{{Key: "z", Value: 3}, {Key: "y", Value: 2}, {Key: "x", Value: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter = %+v, want %+v", got, want)
	}
}

func TestFilterNullCountsAsAbsent(t *testing.T) {
	d := &schema.Descriptor{Name: "n", Required: []string{"a"}, Allowed: []string{"a"}, ErrorMessage: "need a"}

	if _, err := d.Filter(map[string]any{"a": nil}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("null required field accepted: %v", err)
	}
}

func TestFilterRules(t *testing.T) {
	d, ok := schema.Group(types.MediaMusic)
	if !ok {
		t.Fatal("music group schema missing")
	}

	cases := []struct {
		name  string
		input map[string]any
		ok    bool
	}{
		{"minimal", map[string]any{"title": "Abbey Road"}, true},
		{"json year", map[string]any{"title": "Abbey Road", "year": float64(1969)}, true},
		{"year too old", map[string]any{"title": "Abbey Road", "year": float64(1200)}, false},
		{"year as string", map[string]any{"title": "Abbey Road", "year": "1969"}, false},
		{"empty title", map[string]any{"title": ""}, false},
		{"title not string", map[string]any{"title": 42}, false},
		{"bad release type", map[string]any{"title": "x", "music_release_type": "album"}, false},
		{"camel case alias", map[string]any{"title": "x", "musicReleaseType": qualityID}, true},
	}

	for _, tc := range cases {
		_, err := d.Filter(tc.input)
		if got := err == nil; got != tc.ok {
			t.Errorf("%s: ok=%v, want %v (err=%v)", tc.name, got, tc.ok, err)
		}

		if err != nil && !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: err kind = %s", tc.name, apperr.KindOf(err))
		}
	}
}

func TestFieldsMapNormalizesNumbers(t *testing.T) {
	f := schema.Fields{{Key: "year", Value: float64(1969)}, {Key: "ratio", Value: 1.5}, {Key: "name", Value: "x"}}

	m := f.Map()
	if m["year"] != int64(1969) {
		t.Errorf("year = %#v", m["year"])
	}

	if m["ratio"] != 1.5 || m["name"] != "x" {
		t.Errorf("map = %#v", m)
	}
}

func TestCheckReferences(t *testing.T) {
	d, _ := schema.Release(types.MediaMusic)

	fields, err := d.Filter(map[string]any{"title": "Abbey Road", "format": "FLAC", "quality": qualityID})
	if err != nil {
		t.Fatal(err)
	}

	sets := schema.RefSets{schema.RefMusicQualities: {qualityID: {}}}
	if err := d.CheckReferences(fields, sets); err != nil {
		t.Errorf("known quality rejected: %v", err)
	}

	if err := d.CheckReferences(fields, schema.RefSets{}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("unknown quality accepted: %v", err)
	}

	bare, _ := d.Filter(map[string]any{"title": "Abbey Road", "format": "FLAC"})
	if err := d.CheckReferences(bare, schema.RefSets{}); err != nil {
		t.Errorf("absent reference field should pass: %v", err)
	}
}

func TestRegistryCoversMediaTypes(t *testing.T) {
	for _, m := range types.MediaTypes {
		g, ok := schema.Group(m)
		if !ok {
			t.Errorf("no group schema for %s", m)

			continue
		}

		r, ok := schema.Release(m)
		if !ok {
			t.Errorf("no release schema for %s", m)

			continue
		}

		for _, d := range []*schema.Descriptor{g, r} {
			allowed := make(map[string]bool, len(d.Allowed))
			for _, k := range d.Allowed {
				allowed[k] = true
			}

			for _, k := range d.Required {
				if !allowed[k] {
					t.Errorf("%s: required %q is not allowed", d.Name, k)
				}
			}
		}
	}

	movie, _ := schema.Release(types.MediaMovie)
	tv, _ := schema.Release(types.MediaTV)

	if movie != tv {
		t.Error("movie and tv should share the video release schema")
	}

	if a, _ := schema.Lookup(schema.KindArtist, types.MediaMovie); a != schema.Artist {
		t.Error("artist lookup should ignore media type")
	}
}

func TestMusicReleaseRequiresFormat(t *testing.T) {
	d, _ := schema.Release(types.MediaMusic)

	_, err := d.Filter(map[string]any{"title": "Abbey Road"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v", err)
	}
}
