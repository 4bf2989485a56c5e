// Package ui provides the interactive surfaces of the generator: the
// collision prompt and batch progress reporting. The core transformation
// never blocks on user input; these components are injected from the CLI.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/BonHowi/plowgen/internal/project"
)

// ErrCancelled indicates the operator aborted the prompt.
var ErrCancelled = errors.New("ui: cancelled by user")

// CollisionPrompt resolves output-directory collisions by asking the
// operator. It implements project.CollisionResolver.
type CollisionPrompt struct{}

// NewCollisionPrompt creates an interactive collision resolver.
func NewCollisionPrompt() *CollisionPrompt {
	return &CollisionPrompt{}
}

// Resolve asks the operator what to do with an existing project
// directory. Aborting the form maps to ErrCancelled.
func (p *CollisionPrompt) Resolve(ctx context.Context, path string) (project.Decision, error) {
	choice := project.DecisionAbort

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[project.Decision]().
			Title(fmt.Sprintf("Project directory %q already exists", path)).
			Description("Choose how to proceed; the existing directory is never merged into.").
			Options(
				huh.NewOption("Rename existing with timestamp suffix", project.DecisionArchive),
				huh.NewOption("Delete existing and overwrite", project.DecisionOverwrite),
				huh.NewOption("Abort this record", project.DecisionAbort),
			).
			Value(&choice),
	))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return project.DecisionAbort, ErrCancelled
		}
		return project.DecisionAbort, fmt.Errorf("ui: collision prompt: %w", err)
	}
	return choice, nil
}
