package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BonHowi/plowgen/internal/customer"
	"github.com/BonHowi/plowgen/internal/dbt"
	"github.com/BonHowi/plowgen/internal/template"
	"github.com/BonHowi/plowgen/internal/yamldoc"
)

// archiveTimeLayout is the timestamp suffix for archived directories.
const archiveTimeLayout = "20060102_150405"

// Result summarizes the generation of one customer record.
type Result struct {
	ProjectDir   string   // Final project directory.
	ProjectName  string   // Internal dbt project identifier.
	CreatedFiles []string // Paths of files written, in write order.
}

// Assembler generates one project per customer record. The configuration
// trees come from dbt builders; serialization, collision resolution, the
// external initializer, and the clock are all injected, so Generate has
// no hidden dependencies on ambient state.
type Assembler struct {
	ref      dbt.PackageRef
	emitter  *yamldoc.Emitter
	renderer template.Renderer
	resolver CollisionResolver
	init     Initializer
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithInitializer makes Generate scaffold via the external initializer
// before writing artifacts.
func WithInitializer(init Initializer) Option {
	return func(a *Assembler) { a.init = init }
}

// WithClock overrides the time source used for the generation date and
// archive suffixes.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// NewAssembler creates an Assembler. A nil resolver aborts on every
// collision; a nil logger discards logs.
func NewAssembler(ref dbt.PackageRef, emitter *yamldoc.Emitter, renderer template.Renderer, resolver CollisionResolver, logger *slog.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Assembler{
		ref:      ref,
		emitter:  emitter,
		renderer: renderer,
		resolver: resolver,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate produces the full project for one record under outRoot and
// returns the final project path. Each record's output is isolated to
// its own subtree, so batch callers can process records independently.
func (a *Assembler) Generate(ctx context.Context, rec *customer.Record, outRoot string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projectName := dbt.ProjectName(rec)
	projectDir := filepath.Join(outRoot, dbt.ProjectDirName(rec))

	a.logger.Info("generating project",
		"brand", rec.BrandName,
		"name", projectName,
		"dir", projectDir,
	)

	if err := a.clearCollision(ctx, projectDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, fmt.Errorf("project: create project directory %q: %w", projectDir, err)
	}

	if a.init != nil {
		scaffoldDir, err := a.init.Init(ctx, projectName, projectDir)
		if err != nil {
			return nil, err
		}
		projectDir = scaffoldDir
	}

	brand := rec.BrandName
	if brand == "" {
		brand = dbt.PlaceholderBrand
	}
	tmplCtx := template.Context{
		ProjectName: projectName,
		BrandName:   brand,
		ProfileName: dbt.ProfileName,
		GeneratedOn: a.now().Format(time.DateOnly),
	}

	artifacts := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{"packages.yml", func() ([]byte, error) { return a.emitter.Encode(dbt.BuildPackages(a.ref)) }},
		{"dbt_project.yml", func() ([]byte, error) { return a.emitter.Encode(dbt.BuildProject(rec)) }},
		{"profiles.example.yml", func() ([]byte, error) { return a.renderer.Render(template.ProfilesTemplate, tmplCtx) }},
		{"README.md", func() ([]byte, error) { return a.renderer.Render(template.ReadmeTemplate, tmplCtx) }},
	}

	result := &Result{ProjectDir: projectDir, ProjectName: projectName}
	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := artifact.render()
		if err != nil {
			return nil, fmt.Errorf("project: render %s: %w", artifact.name, err)
		}
		path := filepath.Join(projectDir, artifact.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("project: write %s: %w", artifact.name, err)
		}
		a.logger.Debug("wrote file", "path", path)
		result.CreatedFiles = append(result.CreatedFiles, path)
	}

	if err := os.MkdirAll(filepath.Join(projectDir, "models"), 0o755); err != nil {
		return nil, fmt.Errorf("project: create models directory: %w", err)
	}

	return result, nil
}

// clearCollision makes sure projectDir does not exist, consulting the
// resolver when it does. It never merges into an existing directory.
func (a *Assembler) clearCollision(ctx context.Context, projectDir string) error {
	if _, err := os.Stat(projectDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("project: stat %q: %w", projectDir, err)
	}

	if a.resolver == nil {
		return fmt.Errorf("%w: %s", ErrCollision, projectDir)
	}
	decision, err := a.resolver.Resolve(ctx, projectDir)
	if err != nil {
		return fmt.Errorf("project: resolve collision for %q: %w", projectDir, err)
	}

	switch decision {
	case DecisionArchive:
		archived := fmt.Sprintf("%s_old_%s", projectDir, a.now().Format(archiveTimeLayout))
		if err := os.Rename(projectDir, archived); err != nil {
			return fmt.Errorf("project: archive existing project: %w", err)
		}
		a.logger.Info("archived existing project", "from", projectDir, "to", archived)
		return nil
	case DecisionOverwrite:
		if err := os.RemoveAll(projectDir); err != nil {
			return fmt.Errorf("project: remove existing project: %w", err)
		}
		a.logger.Info("removed existing project", "dir", projectDir)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrCollision, projectDir)
	}
}
