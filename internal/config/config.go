package config

import (
	"github.com/BonHowi/plowgen/internal/dbt"
	"github.com/BonHowi/plowgen/internal/yamldoc"
)

// CollisionPolicy decides what happens when a project directory already
// exists from a prior generation run.
type CollisionPolicy string

const (
	// CollisionAsk prompts the operator interactively.
	CollisionAsk CollisionPolicy = "ask"
	// CollisionArchive renames the existing directory with a timestamp suffix.
	CollisionArchive CollisionPolicy = "archive"
	// CollisionOverwrite removes the existing directory entirely.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionFail aborts the record's generation. This is the fallback
	// whenever no explicit decision is available: never overwrite silently.
	CollisionFail CollisionPolicy = "fail"
)

// Default value constants to avoid magic strings.
const (
	DefaultOutputRoot      = "./dbt_projects"
	DefaultCollisionPolicy = CollisionAsk
	DefaultIndent          = yamldoc.DefaultIndent
)

// Config is the generator's runtime configuration.
type Config struct {
	PackageGit      string          // Snowplow Unified dbt package git URL.
	PackageRevision string          // Git ref/branch/tag of the package.
	OutputRoot      string          // Root directory for generated projects.
	OnCollision     CollisionPolicy // Policy for existing project directories.
	UseDbtInit      bool            // Scaffold via the external dbt init tool first.
	Indent          int             // YAML indentation width.
}

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		PackageGit:      dbt.DefaultPackageGit,
		PackageRevision: dbt.DefaultPackageRevision,
		OutputRoot:      DefaultOutputRoot,
		OnCollision:     DefaultCollisionPolicy,
		Indent:          DefaultIndent,
	}
}

// PackageRef returns the configured package reference.
func (c *Config) PackageRef() dbt.PackageRef {
	return dbt.PackageRef{Git: c.PackageGit, Revision: c.PackageRevision}
}

// Validate checks the configuration and returns a ValidationError for the
// first field that is out of range.
func (c *Config) Validate() error {
	switch c.OnCollision {
	case CollisionAsk, CollisionArchive, CollisionOverwrite, CollisionFail:
	default:
		return &ValidationError{
			Field:   "on_collision",
			Message: "unrecognized policy",
			Value:   string(c.OnCollision),
			Wrapped: ErrInvalidCollisionPolicy,
		}
	}
	if c.PackageGit == "" {
		return &ValidationError{Field: "package_git", Message: "must not be empty"}
	}
	if c.PackageRevision == "" {
		return &ValidationError{Field: "package_ref", Message: "must not be empty"}
	}
	if c.OutputRoot == "" {
		return &ValidationError{Field: "out", Message: "must not be empty"}
	}
	if c.Indent < 1 {
		return &ValidationError{Field: "indent", Message: "must be at least 1", Value: c.Indent}
	}
	return nil
}
