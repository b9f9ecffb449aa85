// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watermark

// Risk levels in ascending order of severity.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Impact levels for the readability, structure, and leakage dimensions.
const (
	ImpactNone    = "none"
	ImpactMinimal = "minimal"
	ImpactMedium  = "medium"
	ImpactHigh    = "high"
)

// Information leakage likelihoods.
const (
	LeakageNone     = "none"
	LeakagePossible = "possible"
	LeakageLikely   = "likely"
	LeakageHigh     = "high"
)

// Inferred watermark purposes.
const (
	PurposeUnknown  = "unknown"
	PurposeTracking = "tracking or identification"
	PurposeEmbed    = "data embedding"
)

// Impact summarizes what the detected modifications mean for the
// document: how they affect reading and structure, how much identifying
// information they could carry, and an overall risk level.
type Impact struct {
	Readability string `json:"readability_impact"`
	Structure   string `json:"text_structure_impact"`
	Leakage     string `json:"information_leakage"`
	Purpose     string `json:"intended_purpose"`
	Risk        string `json:"risk_level"`
}

// EvaluateImpact ranks the findings. Invisible characters barely affect
// reading; homoglyphs break search and copy-paste; control characters
// disrupt downstream tooling. Systematic patterns raise the leakage
// dimension, since regularity implies an encoded payload.
func EvaluateImpact(res *Result) Impact {
	imp := Impact{
		Readability: ImpactNone,
		Structure:   ImpactNone,
		Leakage:     LeakageNone,
		Purpose:     PurposeUnknown,
		Risk:        RiskLow,
	}

	if res.Stats[StatInvisible].Total > 0 {
		imp.Readability = ImpactMinimal
	}
	if res.Stats[StatHomoglyph].Total > 0 {
		imp.Readability = ImpactMedium
		imp.Structure = ImpactMedium
	}
	if res.Stats[StatControl].Total > 0 {
		imp.Readability = ImpactMedium
		imp.Structure = ImpactHigh
		imp.Risk = RiskMedium
	}

	p := res.Patterns
	if len(p.Intervals) > 0 || p.Position.Detected || p.Encoding.PossibleBinary {
		imp.Leakage = LeakagePossible
		imp.Purpose = PurposeTracking
		imp.Risk = RiskMedium

		if len(p.Intervals) > 0 {
			imp.Leakage = LeakageLikely
			imp.Risk = RiskHigh
		}
		if p.Encoding.PossibleBinary {
			imp.Leakage = LeakageHigh
			imp.Purpose = PurposeEmbed
			imp.Risk = RiskHigh
		}
	}

	return imp
}
