package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/BonHowi/plowgen/internal/config"
	"github.com/BonHowi/plowgen/internal/customer"
	"github.com/BonHowi/plowgen/internal/project"
	"github.com/BonHowi/plowgen/internal/template"
	"github.com/BonHowi/plowgen/internal/ui"
	"github.com/BonHowi/plowgen/internal/yamldoc"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate dbt projects from customer record files",
	Long: `Generate one dbt project per customer record.

Usage patterns:
  plowgen generate -i brand.json            Generate from a single record
  plowgen generate -I ./brands_json         Generate from every *.json in a directory

Each project lands in its own dbt_<slug> directory under the output root.
When a project directory already exists, the collision policy decides what
happens; without an explicit decision nothing is overwritten.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("input", "i", "", "One input JSON record file")
	generateCmd.Flags().StringP("input-dir", "I", "", "Directory with JSON record files")
	generateCmd.Flags().StringP("out", "o", config.DefaultOutputRoot, "Output root directory")
	generateCmd.Flags().String("package-git", "", "Snowplow Unified dbt package git URL (default: official repository)")
	generateCmd.Flags().String("package-ref", "", "Git ref/branch/tag of the package (default: main)")
	generateCmd.Flags().String("on-collision", string(config.DefaultCollisionPolicy),
		"Existing-directory policy: ask, archive, overwrite, or fail")
	generateCmd.Flags().Bool("use-dbt-init", false, "Scaffold each project with `dbt init` first")
	generateCmd.Flags().Bool("non-interactive", false, "Never prompt; unresolved collisions abort the record")
	generateCmd.Flags().Int("indent", config.DefaultIndent, "YAML indentation width")
}

// runGenerate executes the batch generation workflow.
func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := config.NewDefaultConfig()
	if v := getStringFlag(cmd, "package-git"); v != "" {
		cfg.PackageGit = v
	}
	if v := getStringFlag(cmd, "package-ref"); v != "" {
		cfg.PackageRevision = v
	}
	cfg.OutputRoot = getStringFlag(cmd, "out")
	cfg.OnCollision = config.CollisionPolicy(getStringFlag(cmd, "on-collision"))
	cfg.UseDbtInit = getBoolFlag(cmd, "use-dbt-init")
	cfg.Indent = getIntFlag(cmd, "indent")
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd)
	out := cmd.OutOrStdout()

	paths, err := customer.ResolveInputs(getStringFlag(cmd, "input"), getStringFlag(cmd, "input-dir"))
	if err != nil {
		return err
	}

	interactive := !getBoolFlag(cmd, "non-interactive") && isatty.IsTerminal(os.Stdin.Fd())
	prompting := cfg.OnCollision == config.CollisionAsk && interactive
	resolver := newCollisionResolver(cfg.OnCollision, prompting)

	fsys, err := template.EmbeddedTemplates()
	if err != nil {
		return err
	}
	var opts []project.Option
	if cfg.UseDbtInit {
		opts = append(opts, project.WithInitializer(project.NewDbtInit(logger)))
	}
	asm := project.NewAssembler(
		cfg.PackageRef(),
		yamldoc.NewEmitter(yamldoc.Options{Indent: cfg.Indent}),
		template.NewRenderer(fsys),
		resolver,
		logger,
		opts...,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The animated bar and the collision prompt both want the terminal,
	// so batch progress only animates when no prompting can happen.
	bar := ui.NewProgress(len(paths), out, interactive && !prompting && len(paths) > 1)

	var (
		results []*project.Result
		skipped []string
	)
	for _, path := range paths {
		rec, err := customer.LoadFile(path, logger)
		if err != nil {
			return err
		}

		result, err := asm.Generate(ctx, rec, cfg.OutputRoot)
		switch {
		case err == nil:
			results = append(results, result)
			bar.Advance(result.ProjectName)
		case errors.Is(err, ui.ErrCancelled):
			_, _ = fmt.Fprintln(out, "Generation cancelled.")
			return nil
		case errors.Is(err, project.ErrCollision) && prompting:
			// The operator explicitly chose to keep the existing
			// directory; move on to the remaining records.
			skipped = append(skipped, path)
			bar.Advance("skipped " + path)
		default:
			return fmt.Errorf("generate %s: %w", path, err)
		}
	}
	bar.Done()

	fileCount := 0
	details := []string{}
	for _, r := range results {
		fileCount += len(r.CreatedFiles)
		details = append(details, cliMuted.Render(r.ProjectDir))
	}
	summary := renderKeyValueLines([]kvPair{
		{"Projects", fmt.Sprintf("%d generated", len(results))},
		{"Files", fmt.Sprintf("%d written", fileCount)},
	})
	details = append([]string{summary}, details...)
	for _, s := range skipped {
		details = append(details, cliWarn.Render("Warning: skipped "+s+" (existing directory kept)"))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("dbt projects generated", details...))
	return nil
}

// newCollisionResolver maps the configured policy to a resolver. A nil
// resolver makes the assembler abort, which is the do-not-overwrite
// default whenever no explicit decision is available.
func newCollisionResolver(policy config.CollisionPolicy, prompting bool) project.CollisionResolver {
	switch policy {
	case config.CollisionArchive:
		return project.StaticResolver{Decision: project.DecisionArchive}
	case config.CollisionOverwrite:
		return project.StaticResolver{Decision: project.DecisionOverwrite}
	case config.CollisionAsk:
		if prompting {
			return ui.NewCollisionPrompt()
		}
		return nil
	default:
		return nil
	}
}
