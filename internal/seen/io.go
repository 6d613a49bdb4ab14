package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobboard/internal/models"
)

// ReadJobs reads a JSON array of postings from path.
func ReadJobs(path string) ([]models.JobPosting, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.JobPosting{}, nil
	}

	var jobs []models.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if jobs == nil {
		return []models.JobPosting{}, nil
	}
	return jobs, nil
}

// ReadJobsAllowMissing treats a missing file as an empty history.
func ReadJobsAllowMissing(path string) ([]models.JobPosting, error) {
	jobs, err := ReadJobs(path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.JobPosting{}, nil
	}
	return jobs, err
}

// WriteJobs replaces path with jobs as indented JSON.
func WriteJobs(path string, jobs []models.JobPosting) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
