package dbt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BonHowi/plowgen/internal/customer"
	"github.com/BonHowi/plowgen/internal/yamldoc"
)

func TestSlugAndNaming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		brand    string
		wantSlug string
	}{
		{"plain brand", "Acme Co.", "acme-co"},
		{"missing brand falls back to placeholder", "", "unnamed-brand"},
		{"all punctuation falls back to placeholder", "!!!", "unnamed-brand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &customer.Record{BrandName: tt.brand}
			if got := Slug(rec); got != tt.wantSlug {
				t.Errorf("Slug() = %q, want %q", got, tt.wantSlug)
			}
			if got, want := ProjectName(rec), "snowplow_unified_for_"+tt.wantSlug; got != want {
				t.Errorf("ProjectName() = %q, want %q", got, want)
			}
			if got, want := ProjectDirName(rec), "dbt_"+tt.wantSlug; got != want {
				t.Errorf("ProjectDirName() = %q, want %q", got, want)
			}
		})
	}
}

func TestBuildVarsFeatureFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mobile     string
		web        string
		wantMobile bool
		wantWeb    bool
	}{
		{"absent fields", "", "", false, false},
		{"exact yes", "yes", "yes", true, true},
		{"case-insensitive yes", "YES", "Yes", true, true},
		{"anything else", "no", "true", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vars := BuildVars(&customer.Record{MobileTracking: tt.mobile, WebTracking: tt.web})
			if got := boolVar(t, vars, VarEnableMobile); got != tt.wantMobile {
				t.Errorf("%s = %v, want %v", VarEnableMobile, got, tt.wantMobile)
			}
			if got := boolVar(t, vars, VarEnableWeb); got != tt.wantWeb {
				t.Errorf("%s = %v, want %v", VarEnableWeb, got, tt.wantWeb)
			}
		})
	}
}

func TestBuildVarsDerivedKeysOverrideUserVars(t *testing.T) {
	t.Parallel()

	rec := &customer.Record{
		BrandName: "Y",
		UserVars: []customer.Variable{
			{Name: VarBrandName, Value: "X"},
			{Name: "snowplow__custom", Value: 7.0},
		},
	}
	vars := BuildVars(rec)

	node, ok := vars.Get(VarBrandName)
	if !ok {
		t.Fatalf("%s missing", VarBrandName)
	}
	if s, ok := node.(*yamldoc.Scalar); !ok || s.Value != "Y" {
		t.Errorf("%s = %#v, want %q", VarBrandName, node, "Y")
	}

	// The overridden key keeps the position the user vars gave it.
	keys := vars.Keys()
	if keys[0] != VarBrandName || keys[1] != "snowplow__custom" {
		t.Errorf("key order = %v, want user-var order first", keys)
	}
}

func TestBuildVarsOmitsAbsentOptionalKeys(t *testing.T) {
	t.Parallel()

	vars := BuildVars(&customer.Record{})

	if _, ok := vars.Get(VarStartDate); ok {
		t.Errorf("%s present for record without historical_data_since", VarStartDate)
	}
	if _, ok := vars.Get(VarAppIDs); ok {
		t.Errorf("%s present for record without app_ids", VarAppIDs)
	}
	node, ok := vars.Get(VarBrandName)
	if !ok {
		t.Fatalf("%s missing; it must always be present", VarBrandName)
	}
	if s, ok := node.(*yamldoc.Scalar); !ok || s.Value != nil {
		t.Errorf("%s = %#v, want null", VarBrandName, node)
	}
}

func TestBuildProjectAcmeScenario(t *testing.T) {
	t.Parallel()

	rec, err := customer.Parse([]byte(`{
		"brand_name": "Acme Co.",
		"web_tracking": "Yes",
		"historical_data_since": "2023-01-01"
	}`), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	out, err := yamldoc.NewEmitter(yamldoc.Options{}).Encode(BuildProject(rec))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	text := string(out)

	wantFragments := []string{
		`name: "snowplow_unified_for_acme-co"`,
		`version: 1.0.0`,
		`config-version: 2`,
		`require-dbt-version: [">=1.6.0", "<2.0.0"]`,
		`profile: your_profile_name_here`,
		`search_order: ["snowplow_utils", "dbt"]`,
		`model-paths: [models]`,
		`clean-targets: [target, dbt_modules, dbt_packages]`,
		`snowplow__enable_mobile_data: false`,
		`snowplow__enable_web_data: true`,
		`snowplow__brand_name: Acme Co.`,
		`+schema: my_manifest_schema`,
		`+schema: my_derived_schema`,
	}
	for _, frag := range wantFragments {
		if !strings.Contains(text, frag) {
			t.Errorf("dbt_project.yml missing %q:\n%s", frag, text)
		}
	}
	if !strings.Contains(text, "snowplow__start_date:") ||
		!strings.Contains(text, "2023-01-01") {
		t.Errorf("dbt_project.yml missing start date:\n%s", text)
	}

	// Top-level key order is the conventional dbt_project.yml layout.
	wantOrder := []string{
		"name", "version", "config-version", "require-dbt-version", "profile",
		"dispatch", "model-paths", "analysis-paths", "test-paths", "macro-paths",
		"docs-paths", "asset-paths", "target-path", "clean-targets", "vars", "models",
	}
	gotOrder := BuildProject(rec).Keys()
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("top-level keys = %v, want %v", gotOrder, wantOrder)
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Errorf("key[%d] = %q, want %q", i, gotOrder[i], wantOrder[i])
		}
	}
}

func TestBuildProjectDeterministic(t *testing.T) {
	t.Parallel()

	rec := &customer.Record{
		BrandName: "Brand",
		AppIDs:    []any{"a", "b"},
		UserVars:  []customer.Variable{{Name: "k", Value: map[string]any{"b": 1.0, "a": 2.0}}},
	}
	em := yamldoc.NewEmitter(yamldoc.Options{})

	first, err := em.Encode(BuildProject(rec))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	second, err := em.Encode(BuildProject(rec))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("serialization not deterministic:\n%s\n---\n%s", first, second)
	}
}

func TestBuildPackages(t *testing.T) {
	t.Parallel()

	out, err := yamldoc.NewEmitter(yamldoc.Options{}).Encode(BuildPackages(NewDefaultPackageRef()))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := strings.Join([]string{
		`packages:`,
		`  - git: ` + DefaultPackageGit,
		`    revision: main`,
		``,
	}, "\n")
	if string(out) != want {
		t.Errorf("packages.yml mismatch\ngot:\n%s\nwant:\n%s", out, want)
	}
}

// boolVar extracts a boolean variable from the mapping, failing the test
// when the key is absent or not a bool.
func boolVar(t *testing.T, m *yamldoc.Mapping, key string) bool {
	t.Helper()
	node, ok := m.Get(key)
	if !ok {
		t.Fatalf("%s missing; flags must always be present", key)
	}
	s, ok := node.(*yamldoc.Scalar)
	if !ok {
		t.Fatalf("%s is %#v, want scalar", key, node)
	}
	b, ok := s.Value.(bool)
	if !ok {
		t.Fatalf("%s value is %#v, want bool", key, s.Value)
	}
	return b
}
