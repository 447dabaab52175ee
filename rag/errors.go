package rag

import "errors"

// ErrMalformedExtraction is returned when the entity-extraction model answers
// with something that is not the expected structure. Callers see it wrapped
// in the surrounding call error.
var ErrMalformedExtraction = errors.New("malformed entity extraction response")
