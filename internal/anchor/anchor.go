// Package anchor implements the offset model that ties annotations to
// document text. Offsets are rune offsets into a document's plain-text
// content, measured once when the annotation is created and trusted
// thereafter; this holds only because documents are immutable after upload.
package anchor

import (
	"errors"
	"strings"
	"unicode/utf8"

	"annotapi/internal/model"
)

var (
	ErrEmptySelection    = errors.New("selection is empty")
	ErrSelectionMismatch = errors.New("selection does not match content at the computed offsets")
	ErrInvalidRange      = errors.New("end offset must be greater than start offset")
	ErrRangeOutOfBounds  = errors.New("offset range exceeds content length")
)

// SelectionRange computes the rune-offset range of a selection. prefix is the
// full text preceding the selection start within the rendered content, and
// selected is the selection itself: start is the rune length of prefix, end
// is start plus the rune length of selected. Both strings must reproduce the
// stored content exactly, whitespace included; any mismatch means the render
// diverged from the stored text and the offsets would be unusable.
func SelectionRange(content, prefix, selected string) (start, end int, err error) {
	if selected == "" {
		return 0, 0, ErrEmptySelection
	}
	rest, ok := strings.CutPrefix(content, prefix)
	if !ok || !strings.HasPrefix(rest, selected) {
		return 0, 0, ErrSelectionMismatch
	}
	start = utf8.RuneCountInString(prefix)
	end = start + utf8.RuneCountInString(selected)
	return start, end, nil
}

// Splice splits content into the text before, inside, and after the given
// rune-offset range, for rendering a highlighted annotation. The range is
// applied to the current content as stored, not re-measured.
func Splice(content string, start, end int) (before, highlighted, after string, err error) {
	if end <= start {
		return "", "", "", ErrInvalidRange
	}
	runes := []rune(content)
	if start < 0 || end > len(runes) {
		return "", "", "", ErrRangeOutOfBounds
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:]), nil
}

// Active returns the annotation to highlight, or nil. At most one annotation
// is active at a time: activeID is the click-to-toggle selection, and an ID
// that is no longer in the set (e.g. deleted by its creator since the last
// refresh) yields no highlight rather than an error.
func Active(annotations []model.Annotation, activeID string) *model.Annotation {
	if activeID == "" {
		return nil
	}
	for i := range annotations {
		if annotations[i].ID == activeID {
			return &annotations[i]
		}
	}
	return nil
}

// Reconcile filters a freshly fetched annotation set down to those whose
// ranges are renderable against content. Stored offsets stay valid because
// content is immutable, so this is a defensive guard for renderers, not a
// re-anchoring mechanism.
func Reconcile(content string, annotations []model.Annotation) []model.Annotation {
	length := utf8.RuneCountInString(content)
	valid := make([]model.Annotation, 0, len(annotations))
	for _, a := range annotations {
		if a.StartOffset >= 0 && a.EndOffset > a.StartOffset && a.EndOffset <= length {
			valid = append(valid, a)
		}
	}
	return valid
}
