// File: scripts.go
// Title: texmath Script Placement
// Description: Layout of atoms with a superscript, a subscript or both,
//              following the TeX placement rules: minimum shifts chosen by
//              style, drops relative to the base, and a minimum gap between
//              a superscript and a subscript placed together.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial script placement

package layout

import (
	"math"

	"github.com/msto63/knuth/foundation/texmath/ast"
	"github.com/msto63/knuth/foundation/texmath/boxtree"
	"github.com/msto63/knuth/foundation/texmath/metrics"
	"github.com/msto63/knuth/foundation/texmath/style"
)

// ScriptShifts are the vertical offsets of a script pair, in em of the
// current style. Up is the rise of the superscript, Down the drop of the
// subscript.
type ScriptShifts struct {
	Up   float64
	Down float64
}

// ScriptMetrics are the inputs of script placement. Script metrics are
// already multiplied by the script scale.
type ScriptMetrics struct {
	Style      style.Style
	Scale      float64
	BaseHeight float64
	BaseDepth  float64
	SupDepth   float64
	SubHeight  float64
	HasSup     bool
	HasSub     bool
}

// PlaceScripts computes the script shifts. With both scripts present the
// result satisfies
//
//	(Up - SupDepth) - (SubHeight - Down) >= 4 * DefaultRuleThickness
func PlaceScripts(m ScriptMetrics) ScriptShifts {
	u := m.BaseHeight - metrics.SupDrop*m.Scale
	v := m.BaseDepth + metrics.SubDrop*m.Scale

	p := metrics.Sup2
	switch {
	case m.Style.IsDisplay():
		p = metrics.Sup1
	case m.Style.IsCramped():
		p = metrics.Sup3
	}

	switch {
	case !m.HasSup:
		v = math.Max(v, math.Max(metrics.Sub1, m.SubHeight-0.8*metrics.XHeight))
	case !m.HasSub:
		u = math.Max(u, math.Max(p, m.SupDepth+0.25*metrics.XHeight))
	default:
		u = math.Max(u, math.Max(p, m.SupDepth+0.25*metrics.XHeight))
		v = math.Max(v, metrics.Sub2)

		theta := metrics.DefaultRuleThickness
		if (u-m.SupDepth)-(m.SubHeight-v) < 4*theta {
			v = 4*theta - (u - m.SupDepth) + m.SubHeight
			psi := 0.8*metrics.XHeight - (u - m.SupDepth)
			if psi > 0 {
				u += psi
				v -= psi
			}
		}
	}
	return ScriptShifts{Up: u, Down: v}
}

func (g *groupBuilder) supsub(n *ast.SupSub) (interface{}, error) {
	s := g.opts.Style()

	base, err := g.child(n.Base, g.opts)
	if err != nil {
		return nil, err
	}

	scale := s.Sub().SizeMultiplier() / s.SizeMultiplier()
	m := ScriptMetrics{
		Style:      s,
		Scale:      scale,
		BaseHeight: base.Height(),
		BaseDepth:  base.Depth(),
		HasSup:     n.Sup != nil,
		HasSub:     n.Sub != nil,
	}

	var supInner, subInner *boxtree.Box
	if n.Sup != nil {
		sup, err := g.child(n.Sup, g.opts.WithStyle(s.Sup()))
		if err != nil {
			return nil, err
		}
		supInner = boxtree.NewBox(boxtree.Classes(s.Sup().Class()), []boxtree.Node{sup})
		m.SupDepth = sup.Depth() * scale
	}
	if n.Sub != nil {
		sub, err := g.child(n.Sub, g.opts.WithStyle(s.Sub()))
		if err != nil {
			return nil, err
		}
		subInner = boxtree.NewBox(boxtree.Classes(s.Sub().Class()), []boxtree.Node{sub})
		m.SubHeight = sub.Height() * scale
	}

	shifts := PlaceScripts(m)

	var rows []boxtree.Node
	if supInner != nil {
		rows = append(rows, boxtree.NewBox(
			boxtree.Classes("msup", s.Class()),
			[]boxtree.Node{supInner},
			boxtree.WithShift(-shifts.Up),
			boxtree.WithHeight(supInner.Height()*scale+shifts.Up),
			boxtree.WithDepth(0),
		))
	}
	if subInner != nil {
		rows = append(rows, boxtree.NewBox(
			boxtree.Classes("msub", s.Class()),
			[]boxtree.Node{subInner},
			boxtree.WithShift(shifts.Down),
			boxtree.WithHeight(0),
			boxtree.WithDepth(subInner.Depth()*scale+shifts.Down),
		))
	}

	scripts := boxtree.NewBox([]string{"msupsub"}, rows)
	return result{
		node: boxtree.NewBox([]string{"mord"}, []boxtree.Node{base, scripts}),
		kind: ast.KindSupSub,
	}, nil
}
