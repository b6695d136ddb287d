package store

type FailureType string

const (
	FailureTypeNoCaptions FailureType = "no_captions" // Every source was exhausted without cues.
	FailureTypeUpstream   FailureType = "upstream"    // YouTube could not be reached for the track list.
)
