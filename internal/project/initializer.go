package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// projectConfigFile is the file that marks a directory as a dbt project.
const projectConfigFile = "dbt_project.yml"

// Initializer scaffolds a project through an external tool. It is an
// opaque collaborator: failures propagate to the caller unchanged.
type Initializer interface {
	// Init scaffolds projectName under workDir and returns the resulting
	// project directory (the first descendant containing a recognized
	// project configuration file).
	Init(ctx context.Context, projectName, workDir string) (string, error)
}

// dbtInit runs the dbt CLI's init command.
type dbtInit struct {
	logger *slog.Logger
}

// NewDbtInit creates an Initializer backed by the dbt executable on PATH.
func NewDbtInit(logger *slog.Logger) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &dbtInit{logger: logger}
}

// Init runs `dbt init <projectName>` inside workDir and locates the
// scaffolded project directory.
func (d *dbtInit) Init(ctx context.Context, projectName, workDir string) (string, error) {
	if _, err := exec.LookPath("dbt"); err != nil {
		return "", fmt.Errorf("project: dbt executable not found: %w", err)
	}

	cmd := exec.CommandContext(ctx, "dbt", "init", projectName, "--skip-profile-setup")
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("project: dbt init %s: %w\n%s", projectName, err, out)
	}
	d.logger.Info("dbt init completed", "project", projectName, "dir", workDir)

	return FindScaffoldDir(workDir)
}

// FindScaffoldDir returns the first subdirectory of root (in name order)
// that contains dbt_project.yml. The remaining artifacts are generated
// into that directory, overwriting the scaffold's configuration.
func FindScaffoldDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("project: scan scaffold root %q: %w", root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(candidate, projectConfigFile)); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrScaffoldNotFound, root)
}
