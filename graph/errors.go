package graph

import (
	"errors"
)

// Error kinds. Concrete errors wrap one of these; classify with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error") // Unknown algorithm, bad option values, unreadable config file.
	ErrLoad          = errors.New("load error")          // Graph input missing, malformed, or empty.
	ErrEngine        = errors.New("engine error")        // A vertex program failed, or the engine state is inconsistent.
	ErrOutput        = errors.New("output error")        // Result sink could not be opened or written.
)
