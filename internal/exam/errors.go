package exam

import "errors"

var (
	ErrEmptyQuestionSet = errors.New("question set is empty")
	ErrOutOfRange       = errors.New("index out of range")
	ErrTimerRunning     = errors.New("timer already running")
)
