// Package seen keeps a local history of postings already shown, so repeated
// runs can surface only new ones.
package seen

import (
	"strconv"

	"github.com/jimezsa/jobboard/internal/models"
	"github.com/jimezsa/jobboard/internal/textfold"
)

const keySeparator = "::"

// DiffStats summarizes a Diff call.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats summarizes a Merge call.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Key identifies a posting. The backend id wins; postings without one fall
// back to folded title and company.
func Key(job models.JobPosting) (string, bool) {
	if job.ID > 0 {
		return "id" + keySeparator + strconv.FormatInt(job.ID, 10), true
	}
	title := textfold.Fold(job.Title)
	company := textfold.Fold(job.CompanyName)
	if title == "" || company == "" {
		return "", false
	}
	return title + keySeparator + company, true
}

// Diff returns the postings of fresh that are not in history, without duplicates.
func Diff(fresh []models.JobPosting, history []models.JobPosting) ([]models.JobPosting, DiffStats) {
	stats := DiffStats{TotalNew: len(fresh), TotalSeen: len(history)}

	seenKeys := make(map[string]struct{}, len(history))
	for _, job := range history {
		key, ok := Key(job)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	freshKeys := make(map[string]struct{}, len(fresh))
	unseen := make([]models.JobPosting, 0, len(fresh))
	for _, job := range fresh {
		key, ok := Key(job)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, dup := freshKeys[key]; dup {
			continue
		}
		freshKeys[key] = struct{}{}
		if _, known := seenKeys[key]; known {
			continue
		}
		unseen = append(unseen, job)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends the postings of input missing from history. Entries already
// in history are kept as they are.
func Merge(history []models.JobPosting, input []models.JobPosting) ([]models.JobPosting, MergeStats) {
	stats := MergeStats{TotalSeen: len(history), TotalInput: len(input)}

	keys := make(map[string]struct{}, len(history)+len(input))
	out := make([]models.JobPosting, 0, len(history)+len(input))

	for _, job := range history {
		key, ok := Key(job)
		if !ok {
			stats.InvalidSeen++
			out = append(out, job)
			continue
		}
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, job)
	}

	for _, job := range input {
		key, ok := Key(job)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, job)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
