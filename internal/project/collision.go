// Package project assembles generated dbt projects on disk: it resolves
// output-directory collisions, optionally scaffolds via an external
// initializer, and writes every artifact of one customer record.
package project

import (
	"context"
	"errors"
)

// Sentinel errors for assembly operations.
var (
	// ErrCollision indicates the output directory already exists and no
	// decision cleared it. Absent a decision the generator never
	// overwrites.
	ErrCollision = errors.New("project: output directory already exists")

	// ErrScaffoldNotFound indicates the external initializer produced no
	// directory containing a project configuration file.
	ErrScaffoldNotFound = errors.New("project: no dbt_project.yml found under scaffold directory")
)

// Decision is the outcome of collision resolution for an existing
// project directory.
type Decision int

const (
	// DecisionAbort stops the record's generation and keeps the existing
	// directory untouched.
	DecisionAbort Decision = iota
	// DecisionArchive renames the existing directory with a timestamp
	// suffix before generating into a clean one.
	DecisionArchive
	// DecisionOverwrite removes the existing directory and everything in it.
	DecisionOverwrite
)

// String returns the decision name for logs and prompts.
func (d Decision) String() string {
	switch d {
	case DecisionArchive:
		return "archive"
	case DecisionOverwrite:
		return "overwrite"
	default:
		return "abort"
	}
}

// CollisionResolver decides how to clear an existing project directory.
// The assembler consults it instead of prompting, so interactive, flag,
// and policy-based resolution are all injectable.
type CollisionResolver interface {
	Resolve(ctx context.Context, path string) (Decision, error)
}

// StaticResolver always returns the same decision.
type StaticResolver struct {
	Decision Decision
}

// Resolve implements CollisionResolver.
func (r StaticResolver) Resolve(_ context.Context, _ string) (Decision, error) {
	return r.Decision, nil
}
