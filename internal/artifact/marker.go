package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// MarkerSuffix is appended to the artifact path to name its sidecar.
const MarkerSuffix = ".meta.json"

// Marker records how an artifact was produced.
type Marker struct {
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	View      string    `json:"view"`
	Count     int       `json:"count"`
	Bits      int       `json:"bits"`
	Period    string    `json:"period"`
	Step      string    `json:"step"`
	Checksum  string    `json:"checksum"`
}

// MarkerPath returns the sidecar path for an artifact.
func MarkerPath(artifactPath string) string {
	return artifactPath + MarkerSuffix
}

// WriteMarker writes the sidecar for artifactPath.
func WriteMarker(artifactPath string, marker Marker, perm os.FileMode) error {
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}
	if _, err := Write(MarkerPath(artifactPath), append(data, '\n'), perm); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}
	return nil
}

// ReadMarker loads the sidecar for artifactPath.
func ReadMarker(artifactPath string) (*Marker, error) {
	data, err := os.ReadFile(MarkerPath(artifactPath))
	if err != nil {
		return nil, err
	}
	var marker Marker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf("parsing sidecar: %w", err)
	}
	return &marker, nil
}

// IsValid reports whether the artifact exists and matches its sidecar checksum.
func IsValid(artifactPath string) bool {
	marker, err := ReadMarker(artifactPath)
	if err != nil || marker.Checksum == "" {
		return false
	}
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return false
	}
	return Checksum(data) == marker.Checksum
}
