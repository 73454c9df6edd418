package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyArtifact(t *testing.T) {
	dir := t.TempDir()
	in := writeLog(t, dir, "seeds.txt", reseedLog)
	out := filepath.Join(dir, "map.json")

	s, err := Visualize(Options{InputPath: in, OutputPath: out, Sidecar: true})
	require.NoError(t, err)

	record, err := VerifyArtifactWithLogger(out, nil)
	require.NoError(t, err)
	assert.Equal(t, "timeline", record.View)
	assert.Equal(t, 4, record.Count)
	assert.Equal(t, "1000", record.Step)
	assert.Equal(t, s.Checksum, record.Checksum)

	require.NoError(t, os.WriteFile(out, []byte("{}\n"), 0o644))
	record, err = VerifyArtifactWithLogger(out, nil)
	require.ErrorIs(t, err, ErrArtifactMismatch)
	require.NotNil(t, record)

	_, err = VerifyArtifactWithLogger(filepath.Join(dir, "nothing.png"), nil)
	require.ErrorIs(t, err, ErrArtifactMismatch)
}
