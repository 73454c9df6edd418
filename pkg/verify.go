package pkg

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/covmap/internal/artifact"
)

// ArtifactRecord is the sidecar written next to a coverage map by Visualize.
type ArtifactRecord = artifact.Marker

// VerifyArtifactWithLogger checks a rendered coverage map against its
// sidecar and returns the recorded run.
func VerifyArtifactWithLogger(path string, logger hclog.Logger) (*ArtifactRecord, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	record, err := artifact.ReadMarker(path)
	if err != nil {
		logger.Error("Failed to read sidecar", "path", artifact.MarkerPath(path), "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactMismatch, path, err)
	}
	logger.Info("✓ Sidecar readable", "path", artifact.MarkerPath(path))

	if !artifact.IsValid(path) {
		logger.Error("✗ Artifact checksum mismatch", "path", path, "recorded", record.Checksum)
		return record, fmt.Errorf("%w: %s", ErrArtifactMismatch, path)
	}

	logger.Info("✓ Artifact verification passed", "path", path, "view", record.View, "count", record.Count)
	return record, nil
}
