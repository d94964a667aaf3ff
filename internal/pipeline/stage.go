package pipeline

import "fmt"

// Stage is a step of a pipeline run. Stages only ever advance in declaration
// order, a run that fails stays at the stage that failed.
type Stage int

const (
	StageFetching Stage = iota
	StageParsing
	StageExtracting
	StageTimestampResolving
	StageWriting
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageFetching:
		return "fetching"
	case StageParsing:
		return "parsing"
	case StageExtracting:
		return "extracting"
	case StageTimestampResolving:
		return "timestamp-resolving"
	case StageWriting:
		return "writing"
	case StageDone:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError is a run that failed at Stage because of Err.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
