package extract

import (
	"errors"
	"fmt"
)

// MissingAnchorError reports that an extractor could not locate the text or
// icon reference point it needs to parse the screen. Fatal to the single
// extraction, never to the report.
type MissingAnchorError struct {
	Anchor string
}

func (e *MissingAnchorError) Error() string {
	return fmt.Sprintf("missing anchor %q", e.Anchor)
}

// IsMissingAnchor reports whether err is a MissingAnchorError.
func IsMissingAnchor(err error) bool {
	var target *MissingAnchorError
	return errors.As(err, &target)
}
