package model

import (
	"errors"
	"fmt"
	"time"

	domsvc "ChurnScope/internal/domain/service"
)

// NewClassifier picks the implementation the artifact asks for. Remote
// artifacts need the model service URL.
func NewClassifier(l *Loaded, remoteURL string, timeout time.Duration) (domsvc.Classifier, error) {
	switch l.Artifact.Model.Type {
	case TypeLogistic:
		return NewLocalClassifier(l)
	case TypeRemote:
		if remoteURL == "" {
			return nil, errors.New("remote model artifact requires model.remote_url")
		}
		return NewRemoteClassifier(l, remoteURL, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", l.Artifact.Model.Type)
	}
}
