package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/model"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/orchestrator"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/tool"
	"github.com/projekt-gbx/gbx-digitalisierer/internal/workspace"
	"github.com/projekt-gbx/gbx-digitalisierer/pkg/api"
)

func buildOptions() orchestrator.Options {
	return orchestrator.Options{
		WorkspaceBase: workspaceDir,
		Runner: tool.New(tool.Binaries{
			Rasterizer:    rasterizerBin,
			TextExtractor: extractorBin,
			OCR:           ocrBin,
		}),
		Concurrency: concurrency,
	}
}

var outFile string

func init() {
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "output .gbx path (default: derived from the booklet's Titelblatt)")
}

var runCmd = &cobra.Command{
	Use:   "run <input.pdf>",
	Short: "Digitise a booklet PDF from scratch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile := args[0]
		opts := buildOptions()

		pdf, err := api.ProcessFile(cmd.Context(), inFile, opts)
		if err != nil {
			return err
		}

		gbxPath := outFile
		if gbxPath == "" {
			gbxPath = defaultGbxPath(pdf.Titelblatt)
		}
		// Best-effort snapshot first, then the authoritative artefact (§6):
		// a crash between the two still leaves a loadable .cache.gbx behind.
		if err := api.SaveCache(pdf, gbxPath); err != nil {
			return err
		}
		if err := api.Save(pdf, gbxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", gbxPath)
		return printStatus(pdf)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <booklet.gbx> <input.pdf>",
	Short: "Continue digitising a booklet from its cached workspace",
	Long: `resume reloads a previously written .gbx document and reruns the
pipeline against the same input PDF. Every stage checks its workspace
cache before doing work (§4.A), so pages already processed are not
redone — only pages that failed, or were never attempted, cost anything.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gbxPath, inFile := args[0], args[1]

		prior, err := api.Load(gbxPath)
		if err != nil {
			return err
		}

		opts := buildOptions()
		// Feed the previous run's overrides back in so they steer
		// reclassification and cropping, not just ride along in the output.
		opts.KlassifikationNeu = prior.KlassifikationNeu
		opts.AnpassungenSeite = prior.AnpassungenSeite

		pdf, err := api.ProcessFile(cmd.Context(), inFile, opts)
		if err != nil {
			return err
		}

		if err := api.SaveCache(pdf, gbxPath); err != nil {
			return err
		}
		if err := api.Save(pdf, gbxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "updated %s\n", gbxPath)
		return printStatus(pdf)
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify <booklet.gbx> <seite> <typ>",
	Short: "Override a page's classified form type",
	Long: `classify records a manual Seitentyp override (§4.F's "operator
override always wins" rule) on a booklet's .gbx document without
rerunning the pipeline. Run "resume" afterwards to pick it up.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		gbxPath := args[0]
		seite, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrapf(err, "gbxdig: invalid page number %q", args[1])
		}
		typ := model.SeitenTyp(args[2])

		pdf, err := api.Load(gbxPath)
		if err != nil {
			return err
		}
		pdf.KlassifikationNeu[strconv.Itoa(seite)] = typ

		if err := api.Save(pdf, gbxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "page %d classified as %s\n", seite, typ)
		return nil
	},
}

var enrichCmd = &cobra.Command{
	Use:   "enrich <booklet.gbx>",
	Short: "Run the post-analysis scripts over a digitised booklet",
	Long: `enrich runs the script-driven analysis over a booklet's
Abteilung II/III entries: classify each right, extract its holder, rank
note and amount, and shorten the display text. Script failures become
per-entry warnings on the booklet, never a failed command. Side parties
without an Ordnungsnummer get one assigned from their type's range.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gbxPath := args[0]

		pdf, err := api.Load(gbxPath)
		if err != nil {
			return err
		}

		warnungen := orchestrator.Enrich(&pdf.Analysiert, orchestrator.ScriptSources{}, nil)
		pdf.Analysiert.Warnungen = append(pdf.Analysiert.Warnungen, warnungen...)

		if err := model.OrdnungsnummernAutomatischVergeben(pdf.Analysiert.Nebenbeteiligte); err != nil {
			return err
		}

		if err := api.SaveCache(pdf, gbxPath); err != nil {
			return err
		}
		if err := api.Save(pdf, gbxPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "enriched %s (%d warnings)\n", gbxPath, len(warnungen))
		return printStatus(pdf)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <booklet.gbx>",
	Short: "Print per-page progress and the booklet's overall status icon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdf, err := api.Load(args[0])
		if err != nil {
			return err
		}
		return printStatus(pdf)
	},
}

func defaultGbxPath(t model.Titelblatt) string {
	// maxSeite only affects workspace.Root's filename zero-padding width,
	// irrelevant to Dir() itself, so any positive value works here.
	return workspace.New(workspaceDir, t, 1).Dir() + ".gbx"
}

// printStatus renders a fixed-width page table. go-runewidth accounts for
// the Typ column's occasional multi-byte runes so columns line up in a
// monospace terminal the way len() alone would not.
func printStatus(pdf *model.PdfFile) error {
	seiten := append([]int(nil), pdf.Seitenzahlen...)
	sort.Ints(seiten)

	const typWidth = 40
	fmt.Fprintf(os.Stdout, "%-6s %-*s %s\n", "Seite", typWidth, "Typ", "Status")
	for _, s := range seiten {
		key := strconv.Itoa(s)
		typ := "-"
		status := "offen"
		if sp, ok := pdf.Geladen[key]; ok {
			typ = string(sp.Typ)
			status = "geladen"
		} else if pdf.SeitenVersuchtGeladen[key] {
			status = "fehler"
		}
		pad := typWidth - runewidth.StringWidth(typ)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(os.Stdout, "%-6d %s%*s %s\n", s, typ, pad, "", status)
	}

	icon := map[model.BookletStatus]string{
		model.StatusOK:                   "OK",
		model.StatusKeineOrdnungsnummern: "WARN (keine Ordnungsnummern)",
		model.StatusFehler:               "FEHLER",
	}[pdf.Analysiert.Status()]
	fmt.Fprintf(os.Stdout, "\nGesamtstatus: %s\n", icon)
	return nil
}
