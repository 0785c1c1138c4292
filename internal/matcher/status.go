package matcher

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// ModelStatus is the readiness of the remote model as reported by the
// status endpoint.
type ModelStatus int

const (
	// StatusUnknown covers every status string the client does not
	// recognize. Treated as "keep waiting", never as an error.
	StatusUnknown ModelStatus = iota
	StatusTraining
	StatusReady
)

func (s ModelStatus) String() string {
	switch s {
	case StatusTraining:
		return "training"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

type statusResponse struct {
	Status string `mapstructure:"status"`
}

// GetStatus probes the model readiness endpoint once.
func (c *Client) GetStatus() (ModelStatus, error) {
	statusURL := fmt.Sprintf("%s%s", c.APIURL, statusPath)

	var raw map[string]any
	if err := c.getJSON(statusURL, &raw); err != nil {
		return StatusUnknown, err
	}

	var response statusResponse
	if err := mapstructure.Decode(raw, &response); err != nil {
		return StatusUnknown, fmt.Errorf("decoding status response: %w", err)
	}

	status := StatusUnknown
	switch response.Status {
	case "ready":
		status = StatusReady
	case "training":
		status = StatusTraining
	default:
		c.logger.Debug("unrecognized model status", zap.String("status", response.Status))
	}

	return status, nil
}
