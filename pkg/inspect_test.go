package pkg

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/provide-io/covmap/pkg/seedlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inspectText(t *testing.T, body string) *Report {
	t.Helper()
	log, err := seedlog.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return InspectLog(log, "test")
}

func checks(r *Report) map[string]Severity {
	out := map[string]Severity{}
	for _, f := range r.Findings {
		out[f.Check] = f.Severity
	}
	return out
}

func TestInspectLog_Clean(t *testing.T) {
	r := inspectText(t, reseedLog)
	assert.Empty(t, r.Findings)
	assert.False(t, r.HasErrors())
	assert.True(t, r.TimelineReady)
	assert.Equal(t, "65535", r.Period)
	require.NotNil(t, r.DeclaredCount)
	assert.Equal(t, 4, *r.DeclaredCount)
	assert.Equal(t, "RESEED", r.Fields["TYPE"])
}

func TestInspectLog_Findings(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  map[string]Severity
		error bool
	}{
		{
			name: "count mismatch and skipped",
			body: "# TYPE=GENERATE\n# BITS=8\n# COUNT=3\n0x01\nnope\n",
			want: map[string]Severity{CheckCount: SeverityWarning, CheckSkipped: SeverityWarning},
		},
		{
			name:  "out of range",
			body:  "# BITS=4\n0x1F\n0x3\n",
			want:  map[string]Severity{CheckRange: SeverityError},
			error: true,
		},
		{
			name: "lockup state",
			body: "# BITS=4\n0xF\n",
			want: map[string]Severity{CheckLockup: SeverityWarning},
		},
		{
			name: "duplicates",
			body: "# BITS=8\n0x10\n0x11\n0x10\n16\n",
			want: map[string]Severity{CheckDuplicates: SeverityWarning},
		},
		{
			name:  "reseed without step",
			body:  "# TYPE=RESEED\n# BITS=8\n0x10\n",
			want:  map[string]Severity{CheckTimeline: SeverityError},
			error: true,
		},
		{
			name: "overrun",
			body: "# TYPE=RESEED\n# BITS=2\n# STEP=2\n0x1\n0x2\n",
			want: map[string]Severity{CheckOverrun: SeverityWarning},
		},
		{
			name:  "bad bits",
			body:  "# BITS=zero\n0x1\n",
			want:  map[string]Severity{CheckBits: SeverityError},
			error: true,
		},
		{
			name: "empty",
			body: "# BITS=8\n",
			want: map[string]Severity{CheckEmpty: SeverityWarning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := inspectText(t, tt.body)
			assert.Equal(t, tt.want, checks(r))
			assert.Equal(t, tt.error, r.HasErrors())
		})
	}
}

func TestInspectLog_DuplicateMessage(t *testing.T) {
	r := inspectText(t, "# BITS=8\n0x10\n0x11\n0x10\n16\n0x11\n")
	require.Len(t, r.Findings, 1)
	assert.Equal(t, "2 value(s) repeat, segments overlap: 0x10 at #1,#3,#4; 0x11 at #2,#5", r.Findings[0].Message)
}

func TestInspectLog_OverrunMessage(t *testing.T) {
	r := inspectText(t, "# TYPE=RESEED\n# BITS=8\n# STEP=1000\n0x1\n")
	require.Len(t, r.Findings, 1)
	assert.Equal(t, "run of 1,000 steps exceeds the period 255 by 745 steps", r.Findings[0].Message)
}

func TestListSome(t *testing.T) {
	assert.Equal(t, "a; b", listSome([]string{"a", "b"}))
	assert.Equal(t, "1; 2; 3; 4; 5; ... 2 more", listSome([]string{"1", "2", "3", "4", "5", "6", "7"}))
}

func TestInspectWithLogger(t *testing.T) {
	dir := t.TempDir()

	r, err := InspectWithLogger(writeLog(t, dir, "ok.txt", reseedLog), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Count)

	r, err = InspectWithLogger(writeLog(t, dir, "bad.txt", "# BITS=4\n0x1F\n"), nil)
	require.ErrorIs(t, err, ErrInspectionFailed)
	require.NotNil(t, r)

	_, err = InspectWithLogger(filepath.Join(dir, "missing.txt"), nil)
	require.ErrorIs(t, err, ErrSourceNotFound)
}
