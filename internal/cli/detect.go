package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ironsheep/shirt-mockup-mcp/internal/detection"
	"github.com/ironsheep/shirt-mockup-mcp/internal/imaging"
	"github.com/spf13/cobra"
)

var detectPreview string

var detectCmd = &cobra.Command{
	Use:   "detect <template>...",
	Short: "Report the detected print area of templates",
	Long: `Detect the shirt's bounding rectangle on each template and print it along
with the template's backdrop colour.

With --preview, an outlined copy of a single template is written as PNG.

Examples:
  shirt-mockup-mcp detect Plain_White.png Model_Navy.png
  shirt-mockup-mcp detect Plain_White.png --preview area.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectPreview, "preview", "", "write an outlined PNG (single template only)")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	if detectPreview != "" && len(args) > 1 {
		return fmt.Errorf("--preview takes a single template, got %d", len(args))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEMPLATE\tCATEGORY\tPRINT AREA\tBACKGROUND")

	cache := imaging.NewImageCache()
	for _, path := range args {
		img, err := cache.Load(path)
		if err != nil {
			w.Flush()
			return err
		}

		label := imaging.Label(path)
		category, _ := cfg.Placement.ForLabel(label)
		bg := imaging.CheckBackground(img)

		area := "none (centered fallback)"
		rect, ok := detection.DetectPrintArea(img, cfg.Detection)
		if ok {
			area = imaging.RectCaption(rect.Rect())
		}
		background := bg.Hex
		if !bg.Light {
			background += " (too dark)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, category, area, background)

		if detectPreview != "" {
			var boxes []imaging.Box
			if ok {
				boxes = append(boxes, imaging.Box{Rect: rect.Rect(), ColorHex: imaging.PrintAreaColor, Caption: area})
			}
			if err := imaging.SavePNG(imaging.Annotate(img, boxes, 2), detectPreview); err != nil {
				w.Flush()
				return err
			}
		}
	}
	return w.Flush()
}
