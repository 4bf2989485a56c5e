package dbt

import (
	"strings"

	"github.com/BonHowi/plowgen/internal/customer"
	"github.com/BonHowi/plowgen/internal/slug"
	"github.com/BonHowi/plowgen/internal/yamldoc"
)

// Slug returns the record's brand slug, falling back to the placeholder
// brand when the record has no brand name or the name slugs to nothing.
func Slug(rec *customer.Record) string {
	name := rec.BrandName
	if name == "" {
		name = PlaceholderBrand
	}
	s := slug.Make(name)
	if s == "" {
		s = slug.Make(PlaceholderBrand)
	}
	return s
}

// ProjectName returns the internal dbt project identifier for the record.
func ProjectName(rec *customer.Record) string {
	return projectNamePrefix + Slug(rec)
}

// ProjectDirName returns the per-brand output directory name. Both it and
// ProjectName derive from the same slug.
func ProjectDirName(rec *customer.Record) string {
	return projectDirPrefix + Slug(rec)
}

// BuildVars builds the snowplow_unified variables block. User-set
// variables come first as a base; derived keys are applied afterwards, so
// they win on name collisions while keeping the colliding key's position.
func BuildVars(rec *customer.Record) *yamldoc.Mapping {
	vars := yamldoc.NewMapping()
	for _, v := range rec.UserVars {
		vars.Set(v.Name, yamldoc.FromValue(v.Value))
	}

	if rec.HistoricalDataSince != "" {
		vars.Set(VarStartDate, yamldoc.Str(rec.HistoricalDataSince))
	}

	vars.Set(VarEnableMobile, yamldoc.Bool(strings.EqualFold(rec.MobileTracking, "yes")))
	vars.Set(VarEnableWeb, yamldoc.Bool(strings.EqualFold(rec.WebTracking, "yes")))

	if len(rec.AppIDs) > 0 {
		vars.Set(VarAppIDs, yamldoc.FromValue(rec.AppIDs))
	}

	if rec.BrandName == "" {
		vars.Set(VarBrandName, yamldoc.Null())
	} else {
		vars.Set(VarBrandName, yamldoc.Str(rec.BrandName))
	}
	return vars
}

// BuildProject builds the full dbt_project.yml tree for the record. Key
// order matches the conventional dbt_project.yml layout and is preserved
// on output. Everything outside the vars block is a fixed default of this
// generator, not derived from the record.
func BuildProject(rec *customer.Record) *yamldoc.Mapping {
	return yamldoc.NewMapping().
		Set("name", yamldoc.Quoted(ProjectName(rec))).
		Set("version", yamldoc.Str(projectVersion)).
		Set("config-version", yamldoc.Int(configVersion)).
		Set("require-dbt-version", yamldoc.QuotedCompactStrings(">=1.6.0", "<2.0.0")).
		Set("profile", yamldoc.Str(ProfileName)).
		Set("dispatch", yamldoc.Block(
			yamldoc.NewMapping().
				Set("macro_namespace", yamldoc.Str("dbt")).
				Set("search_order", yamldoc.QuotedCompactStrings("snowplow_utils", "dbt")),
		)).
		Set("model-paths", yamldoc.CompactStrings("models")).
		Set("analysis-paths", yamldoc.CompactStrings("analysis")).
		Set("test-paths", yamldoc.CompactStrings("tests")).
		Set("macro-paths", yamldoc.CompactStrings("macros")).
		Set("docs-paths", yamldoc.CompactStrings("docs")).
		Set("asset-paths", yamldoc.CompactStrings("assets")).
		Set("target-path", yamldoc.Str("target")).
		Set("clean-targets", yamldoc.CompactStrings("target", "dbt_modules", "dbt_packages")).
		Set("vars", yamldoc.NewMapping().Set(packageName, BuildVars(rec))).
		Set("models", buildModelOverrides())
}

// buildModelOverrides returns the fixed per-model schema overrides. The
// +schema values are placeholders the operator fills in per warehouse.
func buildModelOverrides() *yamldoc.Mapping {
	scratch := func() *yamldoc.Mapping {
		return yamldoc.NewMapping().Set("+schema", yamldoc.Str("my_scratch_schema"))
	}
	return yamldoc.NewMapping().Set(packageName, yamldoc.NewMapping().
		Set("base", yamldoc.NewMapping().
			Set("manifest", yamldoc.NewMapping().
				Set("+schema", yamldoc.Str("my_manifest_schema"))).
			Set("scratch", scratch())).
		Set("sessions", yamldoc.NewMapping().
			Set("+schema", yamldoc.Str("my_derived_schema")).
			Set("scratch", scratch())))
}

// BuildPackages builds the packages.yml tree referencing the Snowplow
// Unified dbt package.
func BuildPackages(ref PackageRef) *yamldoc.Mapping {
	return yamldoc.NewMapping().Set("packages", yamldoc.Block(
		yamldoc.NewMapping().
			Set("git", yamldoc.Str(ref.Git)).
			Set("revision", yamldoc.Str(ref.Revision)),
	))
}
