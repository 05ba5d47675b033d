// Package tmpl materializes template files into a destination tree,
// substituting interview answers into each file body.
package tmpl

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Descriptor is one template source: a destination-relative path and a
// text/template body.
type Descriptor struct {
	Path string
	Body string
}

// Materializer writes rendered templates through an afero filesystem so
// tests can run against an in-memory tree.
type Materializer struct {
	fs  afero.Fs
	log zerolog.Logger
}

func NewMaterializer(fs afero.Fs, log zerolog.Logger) *Materializer {
	return &Materializer{fs: fs, log: log}
}

// Materialize renders d with subs and writes it under destPath. A file
// already present at the destination is a conflict and fails the call;
// re-running against a clean destination is idempotent.
func (m *Materializer) Materialize(d Descriptor, destPath string, subs map[string]any) error {
	t, err := template.New(d.Path).Parse(d.Body)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", d.Path, err)
	}

	var body strings.Builder
	if err := t.Execute(&body, subs); err != nil {
		return fmt.Errorf("rendering template %s: %w", d.Path, err)
	}

	target := filepath.Join(destPath, d.Path)
	if exists, err := afero.Exists(m.fs, target); err != nil {
		return fmt.Errorf("checking destination %s: %w", target, err)
	} else if exists {
		return fmt.Errorf("destination file %s already exists", target)
	}

	if err := m.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	if err := afero.WriteFile(m.fs, target, []byte(body.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	m.log.Debug().Str("file", target).Msg("materialized template")
	return nil
}

// MaterializeAll renders each descriptor in order, stopping on the first
// failure.
func (m *Materializer) MaterializeAll(ds []Descriptor, destPath string, subs map[string]any) error {
	for _, d := range ds {
		if err := m.Materialize(d, destPath, subs); err != nil {
			return err
		}
	}
	return nil
}
