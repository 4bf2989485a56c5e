// Package dbt builds the configuration trees of a generated Snowplow
// Unified dbt project: dbt_project.yml, packages.yml, and the derived
// variables block. Builders are pure functions of the customer record;
// anything time-dependent takes its timestamp from the caller.
package dbt

// Default value constants to avoid magic strings.
const (
	DefaultPackageGit      = "https://github.com/snowplow/snowplow-unified-dbt.git"
	DefaultPackageRevision = "main"

	// PlaceholderBrand stands in for records without a usable brand name.
	PlaceholderBrand = "unnamed_brand"

	// ProfileName is the placeholder profile the operator renames later.
	ProfileName = "your_profile_name_here"

	projectNamePrefix = "snowplow_unified_for_"
	projectDirPrefix  = "dbt_"
	projectVersion    = "1.0.0"
	configVersion     = 2
	packageName       = "snowplow_unified"
)

// Variable keys derived from the customer record. Derived keys always
// override same-named user-supplied variables.
const (
	VarStartDate    = "snowplow__start_date"
	VarEnableMobile = "snowplow__enable_mobile_data"
	VarEnableWeb    = "snowplow__enable_web_data"
	VarAppIDs       = "snowplow__app_ids"
	VarBrandName    = "snowplow__brand_name"
)

// PackageRef locates the Snowplow Unified dbt package pulled in by
// packages.yml. It is a configuration input, not derived from the record.
type PackageRef struct {
	Git      string // Git URL of the package repository.
	Revision string // Branch, tag, or commit.
}

// NewDefaultPackageRef returns the documented default package location.
func NewDefaultPackageRef() PackageRef {
	return PackageRef{Git: DefaultPackageGit, Revision: DefaultPackageRevision}
}
