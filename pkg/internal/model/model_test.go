package model_test

import (
	"testing"
	"time"

	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/types"
	"github.com/yeisme/torrentvault/pkg/rule"
)

func TestNewIDIsMonotonicULID(t *testing.T) {
	at := time.Now()

	prev := ""
	for range 100 {
		id := model.NewIDAt(at)
		if err := rule.ValidateVar(id, "ulid"); err != nil {
			t.Fatalf("%q is not a ulid: %v", id, err)
		}

		if id <= prev {
			t.Fatalf("ids not increasing: %s after %s", id, prev)
		}

		prev = id
	}
}

func TestBindingForAllMediaTypes(t *testing.T) {
	for _, m := range types.MediaTypes {
		b, ok := model.BindingFor(m)
		if !ok {
			t.Errorf("no binding for %s", m)

			continue
		}

		if b.Group == nil || b.Release == nil || b.GroupColumn == "" {
			t.Errorf("incomplete binding for %s: %+v", m, b)
		}
	}

	if _, ok := model.BindingFor("podcast"); ok {
		t.Error("unexpected binding for podcast")
	}
}
