package hints

import (
	"testing"

	"github.com/jezek/xgbutil/icccm"
	"github.com/stretchr/testify/assert"
)

func TestApplyWithNoFlagsIsIdentity(t *testing.T) {
	w, h := Apply(icccm.NormalHints{}, 640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestPSizeSeedsHeightFromWidth(t *testing.T) {
	// PSize alone seeds height from the width field, not the height field.
	// Width=800, Height=200 makes any divergence from that unambiguous.
	nh := icccm.NormalHints{Flags: icccm.SizeHintPSize, Width: 800, Height: 200}
	w, h := Apply(nh, 1, 1)
	assert.Equal(t, 800, w)
	assert.Equal(t, 800, h, "height must be seeded from hints.Width, not hints.Height")
}

func TestMinMaxClamp(t *testing.T) {
	nh := icccm.NormalHints{
		Flags:    icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth: 100, MinHeight: 100,
		MaxWidth: 500, MaxHeight: 500,
	}
	w, h := Apply(nh, 10, 10)
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)

	w, h = Apply(nh, 10000, 10000)
	assert.Equal(t, 500, w)
	assert.Equal(t, 500, h)
}

func TestResizeIncrementsRoundDownToBasePlusMultiple(t *testing.T) {
	nh := icccm.NormalHints{
		Flags:     icccm.SizeHintPBaseSize | icccm.SizeHintPResizeInc,
		BaseWidth: 10, BaseHeight: 10,
		WidthInc: 8, HeightInc: 8,
	}
	w, h := Apply(nh, 100, 100)
	// (100-10) rounded down to a multiple of 8, plus base back: 90 -> 88 -> 98
	assert.Equal(t, 98, w)
	assert.Equal(t, 98, h)
}

func TestAspectRatioConstrainsWidth(t *testing.T) {
	nh := icccm.NormalHints{
		Flags:        icccm.SizeHintPAspect,
		MinAspectNum: 1, MinAspectDen: 1,
		MaxAspectNum: 1, MaxAspectDen: 1,
	}
	w, h := Apply(nh, 200, 100)
	assert.Equal(t, h, w, "1:1 aspect bounds must force a square")
}

func TestMaxZeroMeansUnbounded(t *testing.T) {
	nh := icccm.NormalHints{Flags: icccm.SizeHintPMaxSize, MaxWidth: 0, MaxHeight: 0}
	w, h := Apply(nh, 99999, 88888)
	assert.Equal(t, 99999, w)
	assert.Equal(t, 88888, h)
}
