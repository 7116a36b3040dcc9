package apperr_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
)

func TestIsByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", apperr.Validation("schema.music_release", "album release requires title and format"))

	if !errors.Is(err, apperr.ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}

	if errors.Is(err, apperr.ErrPersistence) {
		t.Error("validation error must not match ErrPersistence")
	}

	var e *apperr.Error
	if !errors.As(err, &e) || e.Op != "schema.music_release" {
		t.Errorf("errors.As failed: %+v", e)
	}
}

func TestUnwrapCause(t *testing.T) {
	err := apperr.Storage("blob.write", io.ErrShortWrite)

	if !errors.Is(err, io.ErrShortWrite) {
		t.Error("cause should be reachable with errors.Is")
	}

	if got := err.Error(); got != "blob.write: storage error: short write" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOfAndEnsure(t *testing.T) {
	if k := apperr.KindOf(io.EOF); k != apperr.KindUnknown {
		t.Errorf("KindOf(io.EOF) = %s", k)
	}

	err := apperr.Ensure(apperr.KindPersistence, "release.commit", io.EOF)
	if apperr.KindOf(err) != apperr.KindPersistence {
		t.Errorf("Ensure wrapped kind = %s", apperr.KindOf(err))
	}

	nf := apperr.NotFound("artist.lookup", "artist %s not found", "01J")
	if got := apperr.Ensure(apperr.KindPersistence, "x", nf); got != error(nf) {
		t.Error("Ensure must keep an already classified error")
	}

	if apperr.Ensure(apperr.KindStorage, "x", nil) != nil {
		t.Error("Ensure(nil) should be nil")
	}
}
