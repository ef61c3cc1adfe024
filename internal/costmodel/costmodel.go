// Package costmodel implements the two pure cost functions every other
// layer of the optimizer builds on: the transition waste factor between
// two consecutive jobs, and the setup minutes a machine needs to change
// over between them. Both are deterministic functions of the orders
// involved (and, for setup, the machine) — no state, no I/O.
package costmodel

import (
	"math"

	"github.com/atlantispak/packplan/internal/domain"
	"github.com/atlantispak/packplan/internal/sys/calibers"
)

// Waste returns the fraction, in [0, 0.15], of next's mass lost to
// changeover waste coming from prev. A nil prev is a programmer error
// in every caller of this package; Waste is only ever called with two
// real orders — the "first job on a machine" case is handled upstream
// by never calling Waste at all.
func Waste(prev, next domain.Order) float64 {
	if prev.ProcessFamily != next.ProcessFamily {
		return 0.15
	}

	switch next.ProcessFamily {
	case domain.Extrusion:
		return extrusionWaste(prev, next)
	case domain.Ringing:
		return ringingWaste(prev, next)
	case domain.CorrugationSoft:
		return corrugationWaste(prev, next, 0.025, 0.04, 0.07, 0.05)
	case domain.CorrugationHard:
		return corrugationWaste(prev, next, 0.03, 0.05, 0.08, 0.05)
	default:
		return 0.15
	}
}

func extrusionWaste(prev, next domain.Order) float64 {
	sameMaterial := prev.MaterialID == next.MaterialID
	sameColor := prev.Color == next.Color
	switch {
	case sameMaterial && sameColor:
		return 0.02
	case sameMaterial && !sameColor:
		return 0.05
	case !sameMaterial && sameColor:
		return 0.08
	default:
		return 0.12
	}
}

func ringingWaste(prev, next domain.Order) float64 {
	prevCaliber, prevOK := calibers.Parse(prev.Caliber)
	nextCaliber, nextOK := calibers.Parse(next.Caliber)
	if !prevOK || !nextOK {
		return 0.05
	}
	delta := prevCaliber - nextCaliber
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta == 0:
		return 0.015
	case delta <= 50:
		return 0.03
	default:
		return 0.06
	}
}

func corrugationWaste(prev, next domain.Order, equal, near, far, missing float64) float64 {
	if prev.ThicknessMM == nil || next.ThicknessMM == nil {
		return missing
	}
	delta := *prev.ThicknessMM - *next.ThicknessMM
	delta = math.Abs(delta)
	switch {
	case delta == 0:
		return equal
	case delta <= 0.5:
		return near
	default:
		return far
	}
}

// SetupMinutes returns the non-negative setup time a machine needs
// before running next, given the job that most recently ran there
// (prev == nil for the machine's first job).
func SetupMinutes(next domain.Order, machine domain.Machine, prev *domain.Order) int {
	base := machine.EffectiveSetupMinutes()
	if prev == nil {
		return base
	}
	if prev.ProcessFamily != next.ProcessFamily {
		return 2 * base
	}
	return base + int(math.Floor(float64(base)*Waste(*prev, next)))
}
