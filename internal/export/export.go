// Package export renders program structures into downloadable documents.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ngx/coaching/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat accepts "pdf", "xlsx" and the alias "excel", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ParseFormats parses every entry of raw and drops repeats, keeping the
// order of first appearance.
func ParseFormats(raw []string) ([]Format, error) {
	formats := make([]Format, 0, len(raw))
	for _, r := range raw {
		f, err := ParseFormat(r)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

func (f Format) Extension() string {
	return "." + string(f)
}

// PhaseSummary is one row of the overview table of a phased program.
type PhaseSummary struct {
	Name     string
	Duration int
	Notes    string
}

// Document is everything an exporter needs, independent of where the
// structure came from.
type Document struct {
	Title         string
	Goal          string
	Description   string
	ProgramType   string
	DurationWeeks int
	Phases        []PhaseSummary
	Structure     domain.ProgramStructure
	GeneratedAt   time.Time
}

// FromProgram builds a document from a phased program, flattening its phases
// into consecutive weeks.
func FromProgram(p domain.Program, now time.Time) Document {
	phases := make([]PhaseSummary, len(p.Phases))
	for i, ph := range p.Phases {
		phases[i] = PhaseSummary{Name: ph.Name, Duration: ph.Duration, Notes: ph.Notes}
	}
	return Document{
		Title:         p.Name,
		Goal:          p.Goal,
		Description:   p.Description,
		ProgramType:   p.ProgramType,
		DurationWeeks: p.TotalDuration(),
		Phases:        phases,
		Structure:     p.Schedule(),
		GeneratedAt:   now,
	}
}

func FromTemplate(t domain.Template, now time.Time) Document {
	return Document{
		Title:         t.Name,
		ProgramType:   t.ProgramType,
		DurationWeeks: len(t.Structure.Weeks),
		Structure:     t.Structure,
		GeneratedAt:   now,
	}
}

// FileName is a filesystem-friendly name for the document in format f.
func (d Document) FileName(f Format) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(d.Title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			if s := b.String(); s != "" && !strings.HasSuffix(s, "-") {
				b.WriteByte('-')
			}
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "program"
	}
	return name + f.Extension()
}

// Render writes doc to w in format f.
func Render(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatPDF:
		return renderPDF(w, doc)
	case FormatXLSX:
		return renderXLSX(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Artifact is a rendered document held in memory.
type Artifact struct {
	Format Format
	Data   []byte
}

// RenderAll renders doc in every requested format concurrently. Artifacts are
// returned in the order of formats.
func RenderAll(ctx context.Context, doc Document, formats ...Format) ([]Artifact, error) {
	artifacts := make([]Artifact, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := Render(&buf, f, doc); err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}
			artifacts[i] = Artifact{Format: f, Data: buf.Bytes()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
