package model

import "time"

// Annotation is a threaded comment anchored to a character range of a
// document's plain-text content. Offsets are rune offsets into Content and
// are client-measured at creation time; SelectedText is client-asserted and
// never cross-checked against the document.
//
// The tuple (DocumentID, User.ID, StartOffset, EndOffset) is unique per the
// database constraint: the same user cannot annotate the identical range of
// the same document twice.
type Annotation struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"documentId"`
	User         UserRef   `json:"user"`
	StartOffset  int       `json:"startOffset"`
	EndOffset    int       `json:"endOffset"`
	SelectedText string    `json:"selectedText"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}
