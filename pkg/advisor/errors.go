package advisor

import "errors"

// ErrInvalidInput is the only error Answer surfaces to callers; everything
// on the LLM path is absorbed into the fallback answer.
var ErrInvalidInput = errors.New("advisor: query must not be empty")
