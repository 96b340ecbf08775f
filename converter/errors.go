package converter

import "fmt"

// Stage names the pipeline step at which a record was dropped.
type Stage string

const (
	StageDecode   Stage = "decode"
	StageValidate Stage = "validate"
	StageAssemble Stage = "assemble"
	StagePanic    Stage = "panic"
)

// ConversionError reports a dropped record. It is the only error Convert returns.
type ConversionError struct {
	Index    int
	RecordID string
	Stage    Stage
	Err      error
}

func (e *ConversionError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("record %d (%s): %s: %v", e.Index, e.RecordID, e.Stage, e.Err)
	}
	return fmt.Sprintf("record %d: %s: %v", e.Index, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
