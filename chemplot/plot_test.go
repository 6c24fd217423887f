package chemplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRMSDBars(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "rmsd.png")
	err := RMSDBars("RMSD per template", []string{"1abc", "2xyz"}, []string{"A", "B"},
		[][]float64{{0.5, 1.2}, {0.7, math.NaN()}}, name)
	require.NoError(Te, err)
	st, err := os.Stat(name)
	require.NoError(Te, err)
	assert.Positive(Te, st.Size())

	assert.Error(Te, RMSDBars("x", nil, []string{"A"}, [][]float64{{}}, name))
	assert.Error(Te, RMSDBars("x", []string{"1abc"}, []string{"A"}, [][]float64{{1, 2}}, name))
}

func TestColors(Te *testing.T) {
	assert.Equal(Te, uint8(255), colors(0, 3).A)
	assert.NotEqual(Te, colors(0, 3), colors(1, 3))
	assert.Equal(Te, hsv2RGB(0, 1, 0), hsv2RGB(200, 1, 0), "no saturation means gray")
}
