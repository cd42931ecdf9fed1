package expr

import "fmt"

// ParseError is one recorded problem: the bracket-rendered path of the
// offending node plus a human-readable message. Records are immutable.
type ParseError struct {
	Key     string
	Message string
}

func (e ParseError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// errorSink is the single mutable list shared by every context derived
// within one parse session. Append-only; errors keep the order the descent
// discovered them in.
type errorSink struct {
	errs []ParseError
}

func (s *errorSink) append(key, message string) {
	s.errs = append(s.errs, ParseError{Key: key, Message: message})
}
