package ocr_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projekt-gbx/gbx-digitalisierer/internal/ocr"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
 <head><title></title></head>
 <body>
  <div class='ocr_page' id='page_1' title='bbox 0 0 600 1000'>
   <div class='ocr_carea' id='block_1_1'>
    <p class='ocr_par' id='par_1_1'>
     <span class='ocr_line' id='line_1_1' title="bbox 10 20 300 45">
      <span class='ocrx_word' id='word_1_1' title='bbox 10 20 50 45'>Musterdorf</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 60 20 90 45'>17</span>
     </span>
     <span class='ocr_line' id='line_1_2' title="bbox 10 60 200 85">
      <span class='ocrx_word' id='word_1_3' title='bbox 10 60 80 85'>Ackerland</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestParseHOCRExtractsLinesInOrder(t *testing.T) {
	lines, err := ocr.ParseHOCR([]byte(sampleHOCR))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Musterdorf 17", lines[0].Text)
	assert.Equal(t, image.Rect(10, 20, 300, 45), lines[0].Rect)

	assert.Equal(t, "Ackerland", lines[1].Text)
	assert.Equal(t, image.Rect(10, 60, 200, 85), lines[1].Rect)
}

func TestParseHOCREmptyDocumentParsesToNoLines(t *testing.T) {
	lines, err := ocr.ParseHOCR([]byte(`<html><body><div class="ocr_page"></div></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
