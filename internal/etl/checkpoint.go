package etl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mjaros/pg2ch/pkg/logger"
	"github.com/mjaros/pg2ch/pkg/models"
)

// FileCheckpointStore persists one JSON checkpoint file per job key in Dir.
// The file stays human-readable so operators can inspect progress with cat.
type FileCheckpointStore struct {
	Dir string
}

func NewFileCheckpointStore(dir string) *FileCheckpointStore {
	return &FileCheckpointStore{Dir: dir}
}

// JobKey derives a stable, filesystem-safe checkpoint key from a destination
// table name: lowercased, with every run of non-alphanumeric characters
// collapsed to a single underscore. The key is not injective (analytics.events
// and analytics_events share one), so loaded records are additionally
// validated against the job's table name before a resume.
func JobKey(table string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(table) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	if pendingSep {
		b.WriteByte('_')
	}
	return b.String()
}

func (s *FileCheckpointStore) path(jobKey string) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s.checkpoint.json", jobKey))
}

// Load reads the persisted record for jobKey. A missing or unreadable file is
// not an error: resuming is an optimization, so a corrupt checkpoint is
// logged and treated as absent.
func (s *FileCheckpointStore) Load(jobKey string) (*models.CheckpointRecord, error) {
	data, err := os.ReadFile(s.path(jobKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		logger.Warnf("Checkpoint for %s unreadable, treating as absent: %v", jobKey, err)
		return nil, nil
	}

	var record models.CheckpointRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Warnf("Checkpoint for %s corrupt, treating as absent: %v", jobKey, err)
		return nil, nil
	}
	return &record, nil
}

// Save persists the record, overwriting any prior record for the same job
// key. The write goes to a temp file first and is renamed into place so a
// crash mid-save never leaves a truncated checkpoint behind.
func (s *FileCheckpointStore) Save(record *models.CheckpointRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	target := s.path(JobKey(record.Table))
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to commit checkpoint: %w", err)
	}
	return nil
}

// Clear removes the persisted record. Clearing an absent checkpoint is a
// no-op.
func (s *FileCheckpointStore) Clear(jobKey string) error {
	err := os.Remove(s.path(jobKey))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear checkpoint: %w", err)
	}
	return nil
}
