package pdftable

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(s string, x, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, W: w}
}

func TestSplitCells(t *testing.T) {
	t.Run("gap starts a new cell", func(t *testing.T) {
		row := pdf.TextHorizontal{
			frag("UPI", 10, 20),
			frag("SWIGGY", 32, 40),
			frag("450.00", 200, 30),
		}
		cells := splitCells(row)
		assert.Equal(t, []string{"UPI SWIGGY", "450.00"}, cells)
	})

	t.Run("fragments sorted by x before grouping", func(t *testing.T) {
		row := pdf.TextHorizontal{
			frag("450.00", 200, 30),
			frag("SWIGGY", 32, 40),
			frag("UPI", 10, 20),
		}
		cells := splitCells(row)
		assert.Equal(t, []string{"UPI SWIGGY", "450.00"}, cells)
	})

	t.Run("blank fragments dropped", func(t *testing.T) {
		row := pdf.TextHorizontal{
			frag("  ", 10, 5),
			frag("ATM WDL", 20, 40),
		}
		cells := splitCells(row)
		assert.Equal(t, []string{"ATM WDL"}, cells)
	})

	t.Run("empty row yields no cells", func(t *testing.T) {
		assert.Nil(t, splitCells(pdf.TextHorizontal{}))
	})
}

func TestExtractRowsMissingFile(t *testing.T) {
	_, err := ExtractRows("testdata/does-not-exist.pdf")
	require.Error(t, err)
}
