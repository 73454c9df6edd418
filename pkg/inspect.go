package pkg

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/covmap/pkg/seedlog"
)

// Severity grades an inspection finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Inspection check names.
const (
	CheckBits       = "bits"
	CheckSkipped    = "skipped-lines"
	CheckCount      = "declared-count"
	CheckEmpty      = "empty"
	CheckRange      = "range"
	CheckLockup     = "lockup-state"
	CheckDuplicates = "duplicates"
	CheckTimeline   = "timeline"
	CheckOverrun    = "overrun"
)

// maxListed caps how many offending seeds a finding enumerates.
const maxListed = 5

// Finding is one inspection result.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Check    string   `json:"check" yaml:"check"`
	Message  string   `json:"message" yaml:"message"`
}

// Report summarises a seed log without rendering it.
type Report struct {
	Source        string                `json:"source" yaml:"source"`
	Type          string                `json:"type" yaml:"type"`
	Bits          int                   `json:"bits" yaml:"bits"`
	Step          string                `json:"step" yaml:"step"`
	Period        string                `json:"period,omitempty" yaml:"period,omitempty"`
	Count         int                   `json:"count" yaml:"count"`
	DeclaredCount *int                  `json:"declared_count,omitempty" yaml:"declared_count,omitempty"`
	Fields        map[string]string     `json:"fields" yaml:"fields"`
	Skipped       []seedlog.SkippedLine `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	TimelineReady bool                  `json:"timeline_ready" yaml:"timeline_ready"`
	Findings      []Finding             `json:"findings" yaml:"findings"`
}

// HasErrors reports whether any finding is an error.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) add(sev Severity, check, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Check: check, Message: fmt.Sprintf(format, args...)})
}

// InspectLog checks a parsed log for problems that make a coverage map
// misleading: out-of-range values, repeated states, runs longer than the
// period, and headers that disagree with the body.
func InspectLog(log *seedlog.Log, source string) *Report {
	meta := log.Meta
	r := &Report{
		Source:        source,
		Type:          meta.Type,
		Bits:          meta.Bits,
		Step:          meta.Raw(seedlog.KeyStep),
		Count:         len(log.Seeds),
		Fields:        make(map[string]string, len(meta.Fields)),
		Skipped:       log.Skipped,
		TimelineReady: meta.IsReseed() && len(log.Seeds) > 0,
		Findings:      []Finding{},
	}
	for k, v := range meta.Fields {
		r.Fields[k] = v.Raw
	}
	if n, ok := meta.DeclaredCount(); ok {
		r.DeclaredCount = &n
		if n != len(log.Seeds) {
			r.add(SeverityWarning, CheckCount, "header declares COUNT=%d but the log holds %d seeds", n, len(log.Seeds))
		}
	}

	if len(log.Skipped) > 0 {
		r.add(SeverityWarning, CheckSkipped, "%d malformed line(s) dropped, first at line %d", len(log.Skipped), log.Skipped[0].Line)
	}
	if len(log.Seeds) == 0 {
		r.add(SeverityWarning, CheckEmpty, "log holds no seeds")
	}

	period, err := meta.Period()
	if err != nil {
		r.add(SeverityError, CheckBits, "%v", err)
	} else {
		r.Period = period.String()
		inspectValues(r, log.Seeds, period)
	}

	if meta.Type == seedlog.ModeReseed && !r.TimelineReady {
		r.add(SeverityError, CheckTimeline, "TYPE=%s but timeline view is unavailable (STEP=%s, count=%d)",
			meta.Type, meta.Raw(seedlog.KeyStep), len(log.Seeds))
	}
	if r.TimelineReady && period != nil {
		final := new(big.Int).Mul(big.NewInt(int64(len(log.Seeds))), meta.Step)
		if final.Cmp(period) > 0 {
			over := new(big.Int).Sub(final, period)
			r.add(SeverityWarning, CheckOverrun, "run of %s steps exceeds the period %s by %s steps",
				humanize.BigComma(final), humanize.BigComma(period), humanize.BigComma(over))
		}
	}

	return r
}

func inspectValues(r *Report, seeds []seedlog.Seed, period *big.Int) {
	var outOfRange, lockup []string
	seen := make(map[string]int, len(seeds))
	dups := make(map[string][]int)

	for _, s := range seeds {
		switch s.Value.Cmp(period) {
		case 1:
			outOfRange = append(outOfRange, fmt.Sprintf("#%d=0x%X", s.Index+1, s.Value))
		case 0:
			lockup = append(lockup, fmt.Sprintf("#%d", s.Index+1))
		}

		key := s.Value.Text(16)
		if first, ok := seen[key]; ok {
			if len(dups[key]) == 0 {
				dups[key] = []int{first}
			}
			dups[key] = append(dups[key], s.Index)
			continue
		}
		seen[key] = s.Index
	}

	if len(outOfRange) > 0 {
		r.add(SeverityError, CheckRange, "%d seed(s) exceed 2^%d-1: %s", len(outOfRange), r.Bits, listSome(outOfRange))
	}
	if len(lockup) > 0 {
		r.add(SeverityWarning, CheckLockup, "%d seed(s) hold the all-ones XNOR lock-up state: %s", len(lockup), listSome(lockup))
	}
	if len(dups) > 0 {
		keys := make([]string, 0, len(dups))
		for k := range dups {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return dups[keys[i]][0] < dups[keys[j]][0] })

		items := make([]string, 0, len(keys))
		for _, k := range keys {
			idx := make([]string, len(dups[k]))
			for i, n := range dups[k] {
				idx[i] = fmt.Sprintf("#%d", n+1)
			}
			items = append(items, fmt.Sprintf("0x%s at %s", strings.ToUpper(k), strings.Join(idx, ",")))
		}
		r.add(SeverityWarning, CheckDuplicates, "%d value(s) repeat, segments overlap: %s", len(keys), listSome(items))
	}
}

func listSome(items []string) string {
	if len(items) <= maxListed {
		return strings.Join(items, "; ")
	}
	return strings.Join(items[:maxListed], "; ") + fmt.Sprintf("; ... %d more", len(items)-maxListed)
}

// InspectWithLogger parses and inspects the log at path, logging each check.
func InspectWithLogger(path string, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	log, err := seedlog.ParseFileWithLogger(path, logger)
	if err != nil {
		logger.Error("Failed to read seed log", "path", path, "error", err)
		return nil, err
	}

	logger.Info("Inspecting seed log", "path", path, "seeds", len(log.Seeds))
	report := InspectLog(log, path)

	if len(report.Findings) == 0 {
		logger.Info("✓ Seed log inspection passed")
		return report, nil
	}
	for _, f := range report.Findings {
		if f.Severity == SeverityError {
			logger.Error("✗ "+f.Check, "details", f.Message)
		} else {
			logger.Warn("! "+f.Check, "details", f.Message)
		}
	}
	if report.HasErrors() {
		return report, fmt.Errorf("%w: %s", ErrInspectionFailed, path)
	}
	return report, nil
}
