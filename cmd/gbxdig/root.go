package main

import (
	"github.com/spf13/cobra"

	"github.com/projekt-gbx/gbx-digitalisierer/pkg/log"
)

var (
	verbose, veryVerbose bool

	workspaceDir  string
	rasterizerBin string
	extractorBin  string
	ocrBin        string
	concurrency   int
)

var rootCmd = &cobra.Command{
	Use:   "gbxdig",
	Short: "A Grundbuchblatt digitisation pipeline",
	Long: `gbxdig turns a scanned land-register booklet PDF into a structured
.gbx document.

It rasterises every page, classifies its form layout, crops and OCRs its
columns, parses the result into typed entries (Bestandsverzeichnis,
Abteilung I/II/III) and applies the redaction (Rötung) pass — resuming
from cached intermediates wherever a prior run left off.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "turn on logging")
	rootCmd.PersistentFlags().BoolVar(&veryVerbose, "vv", false, "verbose logging, including subprocess tracing")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "scratch directory root (default: OS temp dir)")
	rootCmd.PersistentFlags().StringVar(&rasterizerBin, "rasterizer", "pdftoppm", "path to the page rasteriser binary")
	rootCmd.PersistentFlags().StringVar(&extractorBin, "text-extractor", "pdftotext", "path to the native text-layout extractor binary")
	rootCmd.PersistentFlags().StringVar(&ocrBin, "ocr", "tesseract", "path to the OCR engine binary")
	rootCmd.PersistentFlags().IntVarP(&concurrency, "concurrency", "j", 0, "bounded worker-pool size (default: PoolSize() formula)")

	rootCmd.AddCommand(runCmd, resumeCmd, classifyCmd, enrichCmd, statusCmd)
}

func initLogging() {
	if quiet := !verbose && !veryVerbose; quiet {
		return
	}
	var err error
	if veryVerbose {
		err = log.SetDevelopmentZapLoggers()
	} else {
		err = log.SetDefaultZapLoggers()
		// Subprocess tracing only at --vv.
		log.SetTraceLogger(nil)
	}
	if err != nil {
		// zap could not be constructed; fall back to the plain stderr loggers
		// rather than running silent.
		log.SetDefaultLoggers()
	}
}
