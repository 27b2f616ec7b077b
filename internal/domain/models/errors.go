package models

import "fmt"

// ArtifactLoadError means the model artifact could not be read, decoded or
// validated. It is terminal for the process: nothing retries the load.
type ArtifactLoadError struct {
	Source string
	Err    error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load model artifact %s: %v", e.Source, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// EncodingMismatchError means a feature name has no mapping in the encoder
// table, i.e. the artifact and the encoder have drifted apart.
type EncodingMismatchError struct {
	Feature string
}

func (e *EncodingMismatchError) Error() string {
	return fmt.Sprintf("no encoding for feature %q", e.Feature)
}

// ModelServiceError wraps a failed call to the external model service.
type ModelServiceError struct {
	Err error
}

func (e *ModelServiceError) Error() string {
	return fmt.Sprintf("model service: %v", e.Err)
}

func (e *ModelServiceError) Unwrap() error { return e.Err }
