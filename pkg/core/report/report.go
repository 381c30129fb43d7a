// Package report defines the ordered findings document produced by a
// declaration audit and its plain-text and Markdown renderers.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Level positions a finding in the report hierarchy.
type Level int

const (
	LevelTop     Level = 1 // one per compared declaration
	LevelStep    Level = 2 // one per filing section
	LevelSubstep Level = 3 // individual observation inside a section
	LevelDetails Level = 4 // free-form detail line under a substep
)

// Criticality grades a finding.
//
//	1 - regular info
//	2 - questionable, may be a risk, may not
//	3 - very likely to be a risk
type Criticality int

const (
	Info         Criticality = 1
	Questionable Criticality = 2
	HighRisk     Criticality = 3
)

// Finding is one line of the audit outcome. Hyperlink is optional and points
// at the public view of the declaration the finding was derived from.
type Finding struct {
	Text        string      `json:"text"`
	Level       Level       `json:"level"`
	Criticality Criticality `json:"criticality"`
	Hyperlink   string      `json:"hyperlink,omitempty"`
}

// Report collects findings for one declarant in chronological pair order.
type Report struct {
	RunID    string    `json:"run_id"`
	FullName string    `json:"full_name"`
	FromYear int       `json:"from_year"`
	ToYear   int       `json:"to_year"`
	Findings []Finding `json:"findings"`
}

// New creates an empty report for a declarant.
func New(fullName string) *Report {
	return &Report{
		RunID:    uuid.NewString(),
		FullName: fullName,
	}
}

// SetPeriod records the covered year range shown in the report header.
func (r *Report) SetPeriod(from, to int) {
	r.FromYear = from
	r.ToYear = to
}

// Add appends an informational finding.
func (r *Report) Add(level Level, text string) {
	r.Findings = append(r.Findings, Finding{Text: text, Level: level, Criticality: Info})
}

// AddRisk appends a finding with an explicit criticality.
func (r *Report) AddRisk(level Level, crit Criticality, text string) {
	r.Findings = append(r.Findings, Finding{Text: text, Level: level, Criticality: crit})
}

// AddLinked appends an informational finding carrying a hyperlink.
func (r *Report) AddLinked(level Level, text, hyperlink string) {
	r.Findings = append(r.Findings, Finding{Text: text, Level: level, Criticality: Info, Hyperlink: hyperlink})
}

// Append moves a batch of pre-built findings onto the report, preserving order.
func (r *Report) Append(findings []Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Summary returns only the findings with criticality above Info, one per line.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, f := range r.Findings {
		if f.Criticality <= Info {
			continue
		}
		b.WriteString(decorate(f))
		b.WriteString("\n")
	}
	return b.String()
}

// Text renders the whole report as indented plain text, one tab per level
// below the top, with criticality markers around flagged lines.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString(r.FullName)
	b.WriteString(fmt.Sprintf("\n%d - %d", r.FromYear, r.ToYear))
	for _, f := range r.Findings {
		indent := strings.Repeat("\t", int(f.Level)-1)
		line := decorate(f)
		line = strings.ReplaceAll(line, "\n", "\n"+indent)
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(line)
		if f.Hyperlink != "" {
			b.WriteString("   " + f.Hyperlink)
		}
	}
	return b.String()
}

func decorate(f Finding) string {
	switch f.Criticality {
	case Questionable:
		return "! " + f.Text + " !"
	case HighRisk:
		return f.Text + " !!!!!!!"
	default:
		return f.Text
	}
}
