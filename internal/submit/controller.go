package submit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rmoralesp/jobfit/internal/catalog"
	"github.com/rmoralesp/jobfit/internal/matcher"
)

var (
	// ErrNoJobSelected rejects a submission with an empty job selection.
	// Raised before any network traffic.
	ErrNoJobSelected = errors.New("no job offer selected")
	// ErrNoFileSelected rejects a submission with no resume files attached.
	ErrNoFileSelected = errors.New("no resume file selected")
)

// ResumeClient issues the single upload request of a submission.
type ResumeClient interface {
	Submit(jobText string, files []matcher.File) (*matcher.MatchResult, error)
}

// Controller validates a submission, assembles the job text from the catalog
// and issues exactly one request to the matching service. No automatic retry:
// a failed submission is reported and the user resubmits.
type Controller struct {
	catalog *catalog.Catalog
	client  ResumeClient
	logger  *zap.Logger
}

func New(cat *catalog.Catalog, client ResumeClient, logger *zap.Logger) *Controller {
	return &Controller{
		catalog: cat,
		client:  client,
		logger:  logger,
	}
}

// Submit runs the full submission workflow. Validation happens synchronously
// before the request is built, so an invalid selection never reaches the
// network.
func (c *Controller) Submit(jobIDs []string, files []matcher.File) (*matcher.MatchResult, error) {
	if len(jobIDs) == 0 {
		return nil, ErrNoJobSelected
	}
	if len(files) == 0 {
		return nil, ErrNoFileSelected
	}

	jobText, err := c.catalog.JobText(jobIDs)
	if err != nil {
		return nil, err
	}

	c.logger.Info("submitting resumes",
		zap.Strings("job_ids", jobIDs),
		zap.Int("files", len(files)),
	)

	result, err := c.client.Submit(jobText, files)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	return result, nil
}

// SubmitPaths opens every path and submits the files in the given order. The
// returned names follow submission order and feed the report.
func (c *Controller) SubmitPaths(jobIDs []string, paths []string) (*matcher.MatchResult, []string, error) {
	if len(jobIDs) == 0 {
		return nil, nil, ErrNoJobSelected
	}
	if len(paths) == 0 {
		return nil, nil, ErrNoFileSelected
	}

	files := make([]matcher.File, 0, len(paths))
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll(files)
			return nil, nil, fmt.Errorf("opening resume file: %w", err)
		}

		name := filepath.Base(path)
		files = append(files, matcher.File{Name: name, Content: f})
		names = append(names, name)
	}
	defer closeAll(files)

	result, err := c.Submit(jobIDs, files)
	if err != nil {
		return nil, nil, err
	}

	return result, names, nil
}

func closeAll(files []matcher.File) {
	for _, f := range files {
		if closer, ok := f.Content.(interface{ Close() error }); ok {
			closer.Close()
		}
	}
}
