package extract

import "errors"

// ErrInsufficientText is the engine's only terminal failure: neither tier
// produced usable text. It carries no partial result and usually means the
// document is a scanned image or corrupted.
var ErrInsufficientText = errors.New(
	"could not extract text from document - likely a scanned image or corrupted file")
