package retrieval

import "fmt"

// RetrievalError reports a failed query against a single collection. The
// merger recovers from it per collection; whether an isolated retrieval
// failure matters is the caller's decision, so Search never swallows it.
type RetrievalError struct {
	Collection string
	Err        error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval from collection %s failed: %v", e.Collection, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
