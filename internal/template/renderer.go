// Package template renders the static auxiliary documents of a generated
// project (README, example connection profile) from embedded templates.
package template

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"text/template"
)

//go:embed templates
var embedded embed.FS

// Template names available through EmbeddedTemplates.
const (
	ReadmeTemplate   = "README.md.tmpl"
	ProfilesTemplate = "profiles.example.yml.tmpl"
)

// Sentinel errors for rendering operations.
var (
	// ErrTemplateNotFound indicates the named template does not exist.
	ErrTemplateNotFound = errors.New("template: template not found")

	// ErrMissingTemplateKey indicates the binding data lacks a key the
	// template references. Rendering runs in strict mode so a silent
	// "<no value>" never reaches a generated file.
	ErrMissingTemplateKey = errors.New("template: missing template key")
)

// Context provides the bindings for static document rendering. The date
// is supplied by the caller, never read from the wall clock here, so
// rendering stays deterministic under test.
type Context struct {
	ProjectName string // Internal dbt project identifier.
	BrandName   string // Originating brand display name.
	ProfileName string // Connection profile placeholder name.
	GeneratedOn string // ISO 8601 date of generation.
}

// EmbeddedTemplates returns the embedded template filesystem.
func EmbeddedTemplates() (fs.FS, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("template: open embedded templates: %w", err)
	}
	return sub, nil
}

// Renderer renders named templates with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the filesystem and executes
	// it with the given data. Returns ErrMissingTemplateKey if the data
	// lacks a referenced key.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use
// testing/fstest.MapFS.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}
	return buf.Bytes(), nil
}
