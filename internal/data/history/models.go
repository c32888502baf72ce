package history

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const SchemaVersion = 1

// StatusOK marks a run that lexed, parsed and analyzed cleanly. Failed runs
// carry the error code of the first failure as their status.
const StatusOK = "OK"

// Run is one pipeline execution over one source.
type Run struct {
	ID           string        `json:"id" yaml:"id"`
	Source       string        `json:"source" yaml:"source"`
	SourceHash   string        `json:"source_hash" yaml:"source_hash"`
	Timestamp    time.Time     `json:"timestamp" yaml:"timestamp"`
	Status       string        `json:"status" yaml:"status"`
	Message      string        `json:"message,omitempty" yaml:"message,omitempty"`
	Tokens       int           `json:"tokens" yaml:"tokens"`
	Nodes        int           `json:"nodes" yaml:"nodes"`
	Symbols      int           `json:"symbols" yaml:"symbols"`
	Strict       bool          `json:"strict" yaml:"strict"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	GrammarPrint string        `json:"grammar" yaml:"grammar"`
}

// OK reports whether the run finished without an error.
func (r Run) OK() bool {
	return r.Status == StatusOK
}

// HashSource returns the hex sha256 of src.
func HashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}
