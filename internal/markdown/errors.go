package markdown

import "github.com/cockroachdb/errors"

// Fatal render conditions. A render that hits one of these returns no output.
var (
	ErrUnsupportedNodeKind    = errors.New("unsupported node kind")
	ErrHeadingLevelOutOfRange = errors.New("heading level out of range")
	ErrNestingTooDeep         = errors.New("document nesting too deep")
)
