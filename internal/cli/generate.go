package cli

import (
	"fmt"
	"strings"

	"github.com/ironsheep/shirt-mockup-mcp/internal/batch"
	"github.com/ironsheep/shirt-mockup-mcp/internal/imaging"
	"github.com/spf13/cobra"
)

var (
	generateDesigns   []string
	generateTemplates []string
	generateOut       string
	generateLayout    string
	generateNames     []string
	generateWorkers   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Composite every design onto every template",
	Long: `Generate a mockup for each design and template pair and write it as PNG.

Output files are named after the design and template labels. A label is the
file name without its extension unless overridden with --name.

Layouts:
  folder  {out}/{design}/{design}_{template}_tee.png (default)
  flat    {out}/{design}_{template}.png

Examples:
  shirt-mockup-mcp generate -d cat.png -t Plain_White.png -o ./mockups
  shirt-mockup-mcp generate -d upload-17.png --name upload-17.png=Cat -t Model_Navy.png -o ./out --layout flat`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&generateDesigns, "design", "d", nil, "design image (repeatable)")
	generateCmd.Flags().StringArrayVarP(&generateTemplates, "template", "t", nil, "template image (repeatable)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", ".", "output directory")
	generateCmd.Flags().StringVar(&generateLayout, "layout", "", "output layout: folder or flat (default from config)")
	generateCmd.Flags().StringArrayVar(&generateNames, "name", nil, "design label override as file=label (repeatable)")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "concurrent renders (default from config, 0 = one per CPU)")
	_ = generateCmd.MarkFlagRequired("design")
	_ = generateCmd.MarkFlagRequired("template")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if generateLayout != "" {
		cfg.Batch.Layout = generateLayout
	}
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = generateWorkers
	}

	labels, err := parseNames(generateNames)
	if err != nil {
		return err
	}

	runner, err := cfg.Runner(generateOut)
	if err != nil {
		return err
	}

	cache := imaging.NewImageCache()
	designs, designErrs := batch.LoadSources(cache, generateDesigns, labels)
	templates, templateErrs := batch.LoadSources(cache, generateTemplates, nil)
	for _, le := range append(designErrs, templateErrs...) {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", le.Path, le.Err)
	}
	if len(designs) == 0 || len(templates) == 0 {
		return fmt.Errorf("nothing to generate: %d design(s) and %d template(s) loaded", len(designs), len(templates))
	}

	ctx, stop := signalContext()
	defer stop()

	report, err := runner.Run(ctx, designs, templates)
	if err != nil {
		return err
	}

	for _, o := range report.Outcomes {
		if o.OK() {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", o.OutputPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s x %s: %s\n", o.Design, o.Template, o.Error)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d generated, %d failed\n", report.Succeeded, report.Failed)

	if report.Succeeded == 0 && report.Failed > 0 {
		return fmt.Errorf("all %d mockups failed", report.Failed)
	}
	return nil
}

// parseNames turns file=label pairs into a label map keyed by file path.
func parseNames(pairs []string) (map[string]string, error) {
	labels := make(map[string]string, len(pairs))
	for _, p := range pairs {
		file, label, ok := strings.Cut(p, "=")
		file, label = strings.TrimSpace(file), strings.TrimSpace(label)
		if !ok || file == "" || label == "" {
			return nil, fmt.Errorf("invalid --name %q, expected file=label", p)
		}
		labels[file] = label
	}
	return labels, nil
}
