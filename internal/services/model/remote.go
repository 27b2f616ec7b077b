package model

import (
	"context"
	"fmt"
	"time"

	"ChurnScope/internal/domain/models"
	domsvc "ChurnScope/internal/domain/service"
	xhttp "ChurnScope/pkg/http"
)

// httpServiceBase wraps the JSON POST round trip to the model service.
type httpServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

func newHTTPServiceBase(baseURL string, timeout time.Duration) *httpServiceBase {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &httpServiceBase{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// postJSON posts payload to path under baseURL and decodes JSON into dest.
func (b *httpServiceBase) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("model service client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// RemoteClassifier scales locally and asks an external model service for
// the prediction. There are no retries; a failed call fails the request.
type RemoteClassifier struct {
	scaler  *StandardScaler
	model   string
	version string
	base    *httpServiceBase
}

func NewRemoteClassifier(l *Loaded, baseURL string, timeout time.Duration) *RemoteClassifier {
	return &RemoteClassifier{
		scaler:  l.Scaler,
		model:   l.Artifact.Name,
		version: l.Artifact.Version,
		base:    newHTTPServiceBase(baseURL, timeout),
	}
}

type predictReq struct {
	Model    string    `json:"model"`
	Version  string    `json:"version"`
	Features []float64 `json:"features"`
}

type predictResp struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

func (c *RemoteClassifier) Transform(v models.FeatureVector) (models.ScaledVector, error) {
	return c.scaler.Transform(v)
}

func (c *RemoteClassifier) Predict(ctx context.Context, v models.ScaledVector) (models.Label, float64, error) {
	var pr predictResp
	err := c.base.postJSON(ctx, "/predict", predictReq{Model: c.model, Version: c.version, Features: v}, &pr)
	if err != nil {
		return models.LabelNoChurn, 0, upstreamErr(err)
	}
	if pr.Probability < 0 || pr.Probability > 1 {
		return models.LabelNoChurn, 0, upstreamErr(fmt.Errorf("probability %v outside [0,1]", pr.Probability))
	}
	switch models.Label(pr.Label) {
	case models.LabelChurn, models.LabelNoChurn:
		return models.Label(pr.Label), pr.Probability, nil
	default:
		return models.LabelNoChurn, 0, upstreamErr(fmt.Errorf("unexpected label %d", pr.Label))
	}
}

func upstreamErr(err error) error {
	return fmt.Errorf("remote predict: %w", &models.ModelServiceError{Err: err})
}

var _ domsvc.Classifier = (*RemoteClassifier)(nil)
