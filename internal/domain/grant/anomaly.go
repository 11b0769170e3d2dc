package grant

import "errors"

// AnomalyKind classifies a per-record problem found during a batch run.
type AnomalyKind string

const (
	AnomalyInvalidAmount   AnomalyKind = "invalid_amount"
	AnomalyMissingLocation AnomalyKind = "missing_location"
	AnomalyInvalidLocation AnomalyKind = "invalid_location"
	AnomalyInvalidStatus   AnomalyKind = "invalid_status"
	AnomalyMissingName     AnomalyKind = "missing_name"
	AnomalySkippedRow      AnomalyKind = "skipped_row"
	AnomalyUnmergedGroup   AnomalyKind = "unmerged_group"
	AnomalyDuplicateName   AnomalyKind = "duplicate_name"
	AnomalyMetadata        AnomalyKind = "metadata_mismatch"
)

// Anomaly is a per-record defect. Runs collect anomalies instead of aborting.
type Anomaly struct {
	Name   string      `json:"name"`
	Kind   AnomalyKind `json:"kind"`
	Detail string      `json:"detail"`
}

// Anomalies converts the defects reported by Validate into anomalies for name.
func Anomalies(name string, err error) []Anomaly {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	out := make([]Anomaly, 0, len(errs))
	for _, e := range errs {
		out = append(out, Anomaly{Name: name, Kind: kindOf(e), Detail: e.Error()})
	}
	return out
}

func kindOf(err error) AnomalyKind {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return AnomalyInvalidAmount
	case errors.Is(err, ErrMissingLocation):
		return AnomalyMissingLocation
	case errors.Is(err, ErrInvalidLocation):
		return AnomalyInvalidLocation
	case errors.Is(err, ErrInvalidStatus):
		return AnomalyInvalidStatus
	case errors.Is(err, ErrMissingName):
		return AnomalyMissingName
	case errors.Is(err, ErrDuplicateName):
		return AnomalyDuplicateName
	case errors.Is(err, ErrMetadataMismatch):
		return AnomalyMetadata
	default:
		return AnomalyUnmergedGroup
	}
}
