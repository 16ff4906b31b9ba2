// File: visitor.go
// Title: texmath AST Visitors
// Description: The Visitor interface plus two visitors used for output: a
//              compact formatter behind Node.String and a dumper producing
//              {type, value} maps for JSON and YAML encoding.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial visitors

package ast

import (
	"fmt"
	"strings"
)

// Visitor has one method per concrete node type
type Visitor interface {
	VisitSymbol(n *Symbol) (interface{}, error)
	VisitSupSub(n *SupSub) (interface{}, error)
	VisitOrdGroup(n *OrdGroup) (interface{}, error)
	VisitColor(n *Color) (interface{}, error)
	VisitSizing(n *Sizing) (interface{}, error)
	VisitLap(n *Lap) (interface{}, error)
	VisitFrac(n *Frac) (interface{}, error)
	VisitSqrt(n *Sqrt) (interface{}, error)
	VisitLogo(n *Logo) (interface{}, error)
}

// Format renders a node in the compact notation used by String, e.g.
// supsub{base:mathord"x" sup:textord"2"}. A nil node renders as "_".
func Format(n Node) string {
	if n == nil {
		return "_"
	}
	s, _ := n.Accept(formatVisitor{})
	return s.(string)
}

// FormatList renders an expression as space separated nodes
func FormatList(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = Format(n)
	}
	return strings.Join(parts, " ")
}

type formatVisitor struct{}

func (formatVisitor) VisitSymbol(n *Symbol) (interface{}, error) {
	return fmt.Sprintf("%s%q", n.Class, n.Value), nil
}

func (formatVisitor) VisitSupSub(n *SupSub) (interface{}, error) {
	parts := []string{"base:" + Format(n.Base)}
	if n.Sup != nil {
		parts = append(parts, "sup:"+Format(n.Sup))
	}
	if n.Sub != nil {
		parts = append(parts, "sub:"+Format(n.Sub))
	}
	return "supsub{" + strings.Join(parts, " ") + "}", nil
}

func (formatVisitor) VisitOrdGroup(n *OrdGroup) (interface{}, error) {
	return "ordgroup[" + FormatList(n.Body) + "]", nil
}

func (formatVisitor) VisitColor(n *Color) (interface{}, error) {
	return "color{" + n.Color + "}[" + FormatList(n.Body) + "]", nil
}

func (formatVisitor) VisitSizing(n *Sizing) (interface{}, error) {
	return fmt.Sprintf("sizing{%d}(%s)", n.Size, Format(n.Body)), nil
}

func (formatVisitor) VisitLap(n *Lap) (interface{}, error) {
	return fmt.Sprintf("%s(%s)", n.Side, Format(n.Body)), nil
}

func (formatVisitor) VisitFrac(n *Frac) (interface{}, error) {
	return fmt.Sprintf("frac{%s}(%s, %s)", n.Variant, Format(n.Numer), Format(n.Denom)), nil
}

func (formatVisitor) VisitSqrt(n *Sqrt) (interface{}, error) {
	return "sqrt(" + Format(n.Body) + ")", nil
}

func (formatVisitor) VisitLogo(n *Logo) (interface{}, error) {
	return string(KindLogo), nil
}

// Dump converts a node into nested maps of the form
// {"type": kind, "value": payload}, ready for JSON or YAML encoding.
func Dump(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}
	v, _ := n.Accept(dumpVisitor{})
	return v.(map[string]interface{})
}

// DumpList converts an expression with Dump
func DumpList(nodes []Node) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = Dump(n)
	}
	return out
}

type dumpVisitor struct{}

func dumpNode(kind Kind, value interface{}) (interface{}, error) {
	return map[string]interface{}{"type": string(kind), "value": value}, nil
}

// dumpOptional keeps absent children as explicit nulls
func dumpOptional(n Node) interface{} {
	if n == nil {
		return nil
	}
	return Dump(n)
}

func (dumpVisitor) VisitSymbol(n *Symbol) (interface{}, error) {
	return dumpNode(n.Class, n.Value)
}

func (dumpVisitor) VisitSupSub(n *SupSub) (interface{}, error) {
	return dumpNode(KindSupSub, map[string]interface{}{
		"base": dumpOptional(n.Base),
		"sup":  dumpOptional(n.Sup),
		"sub":  dumpOptional(n.Sub),
	})
}

func (dumpVisitor) VisitOrdGroup(n *OrdGroup) (interface{}, error) {
	return dumpNode(KindOrdGroup, DumpList(n.Body))
}

func (dumpVisitor) VisitColor(n *Color) (interface{}, error) {
	return dumpNode(KindColor, map[string]interface{}{
		"color": n.Color,
		"value": DumpList(n.Body),
	})
}

func (dumpVisitor) VisitSizing(n *Sizing) (interface{}, error) {
	return dumpNode(KindSizing, map[string]interface{}{
		"size":  n.Size,
		"value": Dump(n.Body),
	})
}

func (dumpVisitor) VisitLap(n *Lap) (interface{}, error) {
	return dumpNode(n.Side, Dump(n.Body))
}

func (dumpVisitor) VisitFrac(n *Frac) (interface{}, error) {
	return dumpNode(KindFrac, map[string]interface{}{
		"numer": Dump(n.Numer),
		"denom": Dump(n.Denom),
		"size":  n.Variant,
	})
}

func (dumpVisitor) VisitSqrt(n *Sqrt) (interface{}, error) {
	return dumpNode(KindSqrt, Dump(n.Body))
}

func (dumpVisitor) VisitLogo(n *Logo) (interface{}, error) {
	return dumpNode(KindLogo, nil)
}
