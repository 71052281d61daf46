package miner

import "errors"

// Sentinel errors returned by Config validation and Mine's own
// bookkeeping, independent of whatever error a Parser/Preprocessor/
// Agglomerator collaborator returns.
var (
	// ErrNoDimensions indicates a Config or parsed Relation carries zero
	// dimensions.
	ErrNoDimensions = errors.New("miner: relation has no dimensions")

	// ErrSizeVectorMismatch indicates MinSize/MaxSize/Epsilon/Tau was
	// supplied with a different length than the relation's dimension
	// count.
	ErrSizeVectorMismatch = errors.New("miner: size/tolerance vector length does not match dimension count")

	// ErrNilSink indicates Mine was called with a nil emit.Sink.
	ErrNilSink = errors.New("miner: nil sink")
)

// UsageError reports a malformed invocation — a bad flag combination, an
// out-of-range argument — the kind of mistake that is the caller's fault
// and never reaches the mining algorithm itself. It replaces the
// original's UsageException: both are fatal before mining starts, but
// here that fatality is expressed by returning an error rather than by
// throwing past main.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return "miner: usage: " + e.Msg }

// NoFileError reports that an input path could not be opened for
// reading, the error-returning counterpart of the original's
// NoFileException.
type NoFileError struct {
	Path string
	Err  error
}

func (e *NoFileError) Error() string {
	if e.Err != nil {
		return "miner: cannot open " + e.Path + ": " + e.Err.Error()
	}
	return "miner: cannot open " + e.Path
}

func (e *NoFileError) Unwrap() error { return e.Err }
