// Package layout builds box trees from AST nodes.
//
// Package: layout
// Title: texmath Layout Builder
// Description: A structurally recursive builder with one rule per node
//              kind. The left context of a sibling run is an explicit
//              accumulator: each build step receives the render kind of the
//              previous sibling and reports its own, which is how a binary
//              operator without a left operand is drawn as an ordinary
//              symbol. Color groups are spliced into the surrounding run;
//              scripts and fractions are placed with the TeX font
//              parameters from the metrics package.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial builder
package layout
