// Package boxtree is the backend-agnostic output of layout.
//
// Package: boxtree
// Title: texmath Box Tree
// Description: Boxes with classes, children and metrics, text leaves and
//              fragments. A box takes the maximum height and depth of its
//              children unless an assembly step overrides them; fragments are
//              spliced into the child list of the box that receives them.
//              Renderers convert a tree through the Materializer contract.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial box tree
package boxtree
