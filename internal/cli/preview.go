package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/BonHowi/plowgen/internal/config"
	"github.com/BonHowi/plowgen/internal/customer"
	"github.com/BonHowi/plowgen/internal/dbt"
	"github.com/BonHowi/plowgen/internal/template"
	"github.com/BonHowi/plowgen/internal/yamldoc"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the documents one record would generate",
	Long: `Render dbt_project.yml, packages.yml, and the README for one customer
record to the terminal without writing anything to disk.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringP("input", "i", "", "Input JSON record file")
	previewCmd.Flags().String("package-git", "", "Snowplow Unified dbt package git URL (default: official repository)")
	previewCmd.Flags().String("package-ref", "", "Git ref/branch/tag of the package (default: main)")
	_ = previewCmd.MarkFlagRequired("input")
}

// runPreview renders one record's documents to stdout.
func runPreview(cmd *cobra.Command, _ []string) error {
	cfg := config.NewDefaultConfig()
	if v := getStringFlag(cmd, "package-git"); v != "" {
		cfg.PackageGit = v
	}
	if v := getStringFlag(cmd, "package-ref"); v != "" {
		cfg.PackageRevision = v
	}

	logger := newLogger(cmd)
	rec, err := customer.LoadFile(getStringFlag(cmd, "input"), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	emitter := yamldoc.NewEmitter(yamldoc.Options{})

	packagesDoc, err := emitter.Encode(dbt.BuildPackages(cfg.PackageRef()))
	if err != nil {
		return err
	}
	projectDoc, err := emitter.Encode(dbt.BuildProject(rec))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Render("packages.yml"))
	_, _ = fmt.Fprintln(out, string(packagesDoc))
	_, _ = fmt.Fprintln(out, cliPrimary.Render("dbt_project.yml"))
	_, _ = fmt.Fprintln(out, string(projectDoc))

	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return err
	}
	brand := rec.BrandName
	if brand == "" {
		brand = dbt.PlaceholderBrand
	}
	readme, err := template.NewRenderer(fsys).Render(template.ReadmeTemplate, template.Context{
		ProjectName: dbt.ProjectName(rec),
		BrandName:   brand,
		ProfileName: dbt.ProfileName,
		GeneratedOn: time.Now().Format(time.DateOnly),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Render("README.md"))
	_, _ = fmt.Fprint(out, renderMarkdown(string(readme)))
	return nil
}

// renderMarkdown pretty-prints markdown for the terminal, falling back
// to the raw text when the renderer cannot be built.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return rendered
}
