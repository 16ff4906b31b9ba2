// Package registry holds the command and symbol tables of the math markup
// language.
//
// Package: registry
// Title: texmath Command Registry
// Description: Read-only lookup tables: the symbol table mapping token types
//              onto symbol categories, the color, size, fraction and lap
//              commands, and listings for documentation output. The tables
//              are built once at package initialization and never mutated;
//              all accessors return copies.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tables
package registry
