package uischema

import "github.com/agent-eval-gang/tracediff-go/internal/align"

// TypeStyle is the presentation metadata for one comparison type.
type TypeStyle struct {
	Label           string `json:"label"`
	ColorFamily     string `json:"color_family"`
	BackgroundStyle string `json:"background_style"`
	BorderStyle     string `json:"border_style"`
}

var typeStyles = map[align.PairType]TypeStyle{
	align.PairMatched: {
		Label:           "Matched",
		ColorFamily:     "green",
		BackgroundStyle: "bg-green-50",
		BorderStyle:     "border-solid",
	},
	align.PairModified: {
		Label:           "Modified",
		ColorFamily:     "amber",
		BackgroundStyle: "bg-amber-50",
		BorderStyle:     "border-dashed",
	},
	align.PairAdded: {
		Label:           "Added",
		ColorFamily:     "blue",
		BackgroundStyle: "bg-blue-50",
		BorderStyle:     "border-solid",
	},
	align.PairRemoved: {
		Label:           "Removed",
		ColorFamily:     "red",
		BackgroundStyle: "bg-red-50",
		BorderStyle:     "border-dotted",
	},
}

// Describe returns the presentation triple for a comparison type.
// Unknown types get a neutral fallback so the lookup stays total.
func Describe(t align.PairType) TypeStyle {
	if style, ok := typeStyles[t]; ok {
		return style
	}
	return TypeStyle{
		Label:           string(t),
		ColorFamily:     "gray",
		BackgroundStyle: "bg-gray-50",
		BorderStyle:     "border-solid",
	}
}
