// File: frac.go
// Title: texmath Fraction and Radical Rules
// Description: Fractions stack a numerator row, a divider and a
//              denominator row with shifts from the font parameters and the
//              TeX clearance around the rule. Radicals draw a sign box next
//              to the cramped radicand.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial fraction and radical rules

package layout

import (
	"math"

	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/metrics"
	"github.com/msto63/knuth/foundation/texmath/style"
)

// FracStyle resolves the style a fraction is set in: dfrac forces display,
// tfrac forces text and frac keeps the current style.
func FracStyle(variant string, current style.Style) style.Style {
	switch variant {
	case "dfrac":
		return style.Display
	case "tfrac":
		return style.Text
	}
	return current
}

// FracShifts are the numerator rise and denominator drop of a fraction
type FracShifts struct {
	Num   float64
	Denom float64
}

// PlaceFraction computes the shifts for a numerator depth and denominator
// height, both in em of the fraction style. The gaps between each row and
// the rule are at least 3θ in display style and θ otherwise.
func PlaceFraction(fstyle style.Style, numDepth, denomHeight float64) FracShifts {
	theta := metrics.DefaultRuleThickness
	axis := metrics.AxisHeight

	u, v, clearance := metrics.Num2, metrics.Denom2, theta
	if fstyle.IsDisplay() {
		u, v, clearance = metrics.Num1, metrics.Denom1, 3*theta
	}

	if gap := (u - numDepth) - (axis + theta/2); gap < clearance {
		u += clearance - gap
	}
	if gap := (axis - theta/2) - (denomHeight - v); gap < clearance {
		v += clearance - gap
	}
	return FracShifts{Num: u, Denom: v}
}

func (g *groupBuilder) frac(n *ast.Frac) (interface{}, error) {
	if g.b.env.FractionsUnsupported {
		return nil, newUnsupported(ast.KindFrac, "fractions are not supported by this environment")
	}

	fstyle := FracStyle(n.Variant, g.opts.Style())
	nstyle, dstyle := fstyle.FracNum(), fstyle.FracDen()
	nscale := nstyle.SizeMultiplier() / fstyle.SizeMultiplier()
	dscale := dstyle.SizeMultiplier() / fstyle.SizeMultiplier()

	numer, err := g.child(n.Numer, g.opts.WithStyle(nstyle))
	if err != nil {
		return nil, err
	}
	denom, err := g.child(n.Denom, g.opts.WithStyle(dstyle))
	if err != nil {
		return nil, err
	}

	numH, numD := numer.Height()*nscale, numer.Depth()*nscale
	denH, denD := denom.Height()*dscale, denom.Depth()*dscale
	shifts := PlaceFraction(fstyle, numD, denH)

	theta := metrics.DefaultRuleThickness
	numRow := boxtree.NewBox(
		boxtree.Classes("mfracnum", nstyle.Class()),
		[]boxtree.Node{boxtree.NewBox(nil, []boxtree.Node{numer})},
		boxtree.WithShift(-shifts.Num),
		boxtree.WithHeight(numH+shifts.Num),
		boxtree.WithDepth(math.Max(0, numD-shifts.Num)),
	)
	mid := boxtree.NewBox([]string{"mfracmid"}, nil,
		boxtree.WithHeight(metrics.AxisHeight+theta/2),
	)
	denRow := boxtree.NewBox(
		boxtree.Classes("mfracden", dstyle.Class()),
		[]boxtree.Node{boxtree.NewBox(nil, []boxtree.Node{denom})},
		boxtree.WithShift(shifts.Denom),
		boxtree.WithHeight(math.Max(0, denH-shifts.Denom)),
		boxtree.WithDepth(denD+shifts.Denom),
	)

	return result{
		node: boxtree.NewBox(
			boxtree.Classes("minner mfrac", fstyle.Class(), g.opts.Color()),
			[]boxtree.Node{numRow, mid, denRow},
		),
		kind: ast.KindFrac,
	}, nil
}

// radicalSign is drawn in front of the radicand
const radicalSign = "√"

func (g *groupBuilder) sqrt(n *ast.Sqrt) (interface{}, error) {
	s := g.opts.Style()
	body, err := g.child(n.Body, g.opts.WithStyle(s.Cramp()))
	if err != nil {
		return nil, err
	}

	theta := metrics.DefaultRuleThickness
	clearance := theta + theta/4
	if s.IsDisplay() {
		clearance = theta + metrics.XHeight/4
	}

	sign := boxtree.NewBox([]string{"sqrt-sign"}, []boxtree.Node{
		boxtree.NewText(radicalSign, body.Height()+clearance+theta, body.Depth()),
	})
	inner := boxtree.NewBox([]string{"sqrt-body"}, []boxtree.Node{body})
	return result{
		node: boxtree.NewBox(boxtree.Classes("mord sqrt", g.opts.Color()), []boxtree.Node{sign, inner}),
		kind: ast.KindSqrt,
	}, nil
}
