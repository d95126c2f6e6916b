// Package hints implements the ICCCM WM_NORMAL_HINTS size-constraint
// algorithm as a pure function: given a hint set and a candidate size, it
// returns the constrained size. It touches no X state, which is what makes
// it unit-testable without a live connection. The base/increment/aspect
// derivation follows dwm's.
package hints

import "github.com/jezek/xgbutil/icccm"

// Apply clamps (w, h) against nh's WM_NORMAL_HINTS flags and returns the
// constrained size: PSize seeding, then base size, aspect bounds, resize
// increments relative to the base, and finally the min/max clamp (max 0
// means unbounded).
//
// One legacy quirk is kept deliberately: when only PSize is set, the
// seeded height comes from the hint's width field, matching the dwm
// lineage this derivation descends from.
func Apply(nh icccm.NormalHints, w, h int) (int, int) {
	var basew, baseh, incw, inch, minw, minh, maxw, maxh int
	var mina, maxa float64

	if nh.Flags&icccm.SizeHintPSize != 0 {
		w = int(nh.Width)
		h = int(nh.Width)
	}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		basew, baseh = int(nh.BaseWidth), int(nh.BaseHeight)
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		basew, baseh = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		incw, inch = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		maxw, maxh = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		minw, minh = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectNum > 0 && nh.MaxAspectDen > 0 {
		mina = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		maxa = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}

	// Base is removed before the aspect check unless it is the min size,
	// in which case it is removed after it; either way increments are
	// applied relative to the base.
	baseIsMin := basew == minw && baseh == minh
	if !baseIsMin {
		w -= basew
		h -= baseh
	}
	if mina > 0 && maxa > 0 {
		if maxa < float64(w)/float64(h) {
			w = int(float64(h)*maxa + 0.5)
		} else if mina < float64(h)/float64(w) {
			h = int(float64(w)*mina + 0.5)
		}
	}
	if baseIsMin {
		w -= basew
		h -= baseh
	}
	if incw != 0 {
		w -= w % incw
	}
	if inch != 0 {
		h -= h % inch
	}
	w = maxInt(w+basew, minw)
	h = maxInt(h+baseh, minh)
	if maxw != 0 {
		w = minInt(w, maxw)
	}
	if maxh != 0 {
		h = minInt(h, maxh)
	}
	return w, h
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
