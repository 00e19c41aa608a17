// Command gbxdig runs the Grundbuchblatt digitisation pipeline from the
// command line: rasterise, classify, OCR and parse a scanned land-register
// booklet PDF into a .gbx document (§4.A–§4.M).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gbxdig: %v\n", err)
		os.Exit(1)
	}
}
