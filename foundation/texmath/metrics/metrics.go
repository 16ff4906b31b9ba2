// Package metrics provides the glyph metrics and font parameters used by
// layout.
//
// Package: metrics
// Title: texmath Font Metrics
// Description: Height and depth lookups for glyphs with the documented
//              defaults, the substitution table from commands to the glyph
//              that is drawn, the TeX font parameters used for script and
//              fraction placement, spacing widths and the size multipliers of
//              the size commands. All values are in em.
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tables
package metrics

// Defaults for glyphs without an entry: digits and capitals are 0.69 high
// and most glyphs have no depth.
const (
	DefaultHeight = 0.69
	DefaultDepth  = 0.0
)

// Font parameters (sigma and xi values of the math fonts)
const (
	XHeight              = 0.431 // sigma5
	Quad                 = 1.0   // sigma6
	Num1                 = 0.677 // sigma8, display numerator shift
	Num2                 = 0.394 // sigma9, text numerator shift
	Denom1               = 0.686 // sigma11, display denominator shift
	Denom2               = 0.345 // sigma12, text denominator shift
	Sup1                 = 0.413 // sigma13, display superscript minimum
	Sup2                 = 0.363 // sigma14, default superscript minimum
	Sup3                 = 0.289 // sigma15, cramped superscript minimum
	Sub1                 = 0.150 // sigma16, subscript-only minimum
	Sub2                 = 0.247 // sigma17, subscript minimum with a superscript
	SupDrop              = 0.386 // sigma18
	SubDrop              = 0.050 // sigma19
	AxisHeight           = 0.250 // sigma22
	DefaultRuleThickness = 0.04  // xi8
)

var heights = map[string]float64{
	"+": 0.583333, "-": 0.583333,
}

var depths = map[string]float64{
	"f": 0.194444, "g": 0.194444, "j": 0.194444, "p": 0.194444,
	"q": 0.194444, "y": 0.194444, "Q": 0.194444,
	"+": 0.083333, "-": 0.083333,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		heights[string(c)] = 0.430554
	}
	for _, c := range "bdfhkl" {
		heights[string(c)] = 0.694444
	}
	heights["i"], heights["j"] = 0.659525, 0.659525
	heights["t"] = 0.615079
	for c := 'A'; c <= 'Z'; c++ {
		heights[string(c)] = 0.683331
	}
}

// Height returns the height of the glyph for a literal value
func Height(value string) float64 {
	if h, ok := heights[value]; ok {
		return h
	}
	return DefaultHeight
}

// Depth returns the depth of the glyph for a literal value
func Depth(value string) float64 {
	if d, ok := depths[value]; ok {
		return d
	}
	return DefaultDepth
}

// glyphs maps literal values onto the character that is drawn
var glyphs = map[string]string{
	"*": "∗", "-": "−", "`": "‘",
	`\ `: "\u00a0", `\space`: "\u00a0",
	`\$`: "$", `\%`: "%", `\colon`: ":",
	`\angle`: "∠", `\infty`: "∞", `\prime`: "′", `\triangle`: "△",
	`\cdot`: "⋅", `\circ`: "∘", `\div`: "÷", `\pm`: "±", `\times`: "×",
	`\approx`: "≈", `\cong`: "≅", `\ge`: "≥", `\geq`: "≥",
	`\le`: "≤", `\leq`: "≤", `\ne`: "≠", `\neq`: "≠",
	`\in`: "∈", `\gets`: "←", `\leftarrow`: "←",
	`\rightarrow`: "→", `\to`: "→",
	`\ngeq`: "≱", `\nleq`: "≰",
	`\langle`: "⟨", `\rangle`: "⟩", `\lvert`: "|", `\rvert`: "|",

	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ", `\delta`: "δ",
	`\epsilon`: "ϵ", `\zeta`: "ζ", `\eta`: "η", `\theta`: "θ",
	`\iota`: "ι", `\kappa`: "κ", `\lambda`: "λ", `\mu`: "μ",
	`\nu`: "ν", `\xi`: "ξ", `\omicron`: "ο", `\pi`: "π",
	`\rho`: "ρ", `\sigma`: "σ", `\tau`: "τ", `\upsilon`: "υ",
	`\phi`: "ϕ", `\chi`: "χ", `\psi`: "ψ", `\omega`: "ω",
	`\varepsilon`: "ε", `\vartheta`: "ϑ", `\varpi`: "ϖ",
	`\varrho`: "ϱ", `\varsigma`: "ς", `\varphi`: "φ",

	`\Gamma`: "Γ", `\Delta`: "Δ", `\Theta`: "Θ", `\Lambda`: "Λ",
	`\Xi`: "Ξ", `\Pi`: "Π", `\Sigma`: "Σ", `\Upsilon`: "Υ",
	`\Phi`: "Φ", `\Psi`: "Ψ", `\Omega`: "Ω",
}

// Glyph returns the character drawn for a literal value; values without a
// substitution are drawn as they are.
func Glyph(value string) string {
	if g, ok := glyphs[value]; ok {
		return g
	}
	return value
}

// spacing widths in em, keyed by the class name of the spacer
var spaceWidths = map[string]float64{
	"qquad":             2 * Quad,
	"quad":              Quad,
	"thickspace":        5.0 / 18,
	"mediumspace":       4.0 / 18,
	"thinspace":         3.0 / 18,
	"negativethinspace": -3.0 / 18,
}

// SpaceWidth returns the width of a spacer class
func SpaceWidth(class string) (float64, bool) {
	w, ok := spaceWidths[class]
	return w, ok
}

var sizeMultipliers = [...]float64{0.5, 0.7, 0.8, 0.9, 1.0, 1.2, 1.44, 1.73, 2.07, 2.49}

// SizeMultiplier returns the font scale of a 1-based size index; index 5
// is the normal size. Out of range indexes return 1.
func SizeMultiplier(index int) float64 {
	if index < 1 || index > len(sizeMultipliers) {
		return 1.0
	}
	return sizeMultipliers[index-1]
}
