package ports

import (
	"splc/internal/data/history"
)

// RunRecorder abstracts run persistence for the pipeline and the history
// command.
type RunRecorder interface {
	Record(run history.Run) (history.Run, error)
	Recent(source string, limit int) ([]history.Run, error)
}
