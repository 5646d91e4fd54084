// Package outfit derives clothing recommendations from normalized weather
// values. The engine is a pure function over five scalars and a day period:
// threshold ladders are ordered data, evaluated first-match-wins, so rule
// priority is explicit rather than incidental code order.
package outfit

import "math"

// Period is the day slot a recommendation is for. Night suppresses
// sunglasses and enables the lighter neck-layer rule.
type Period string

const (
	Morning   Period = "morning"
	Afternoon Period = "afternoon"
	Night     Period = "night"
)

// Conditions are the recommender inputs. Temperatures are Fahrenheit and
// wind is mph regardless of the display unit system, so every threshold
// below compares in one unit system.
type Conditions struct {
	TempF       float64
	WindMph     float64
	RainPct     float64
	HumidityPct float64
	CloudPct    float64
	Period      Period
}

// Fixed rule thresholds.
const (
	freezingF          = 32
	windbreakerWindMph = 20
	rainPctThreshold   = 50
	sunnyCloudPct      = 20
	nightScarfTempF    = 50
)

// bandRule is one tier of a temperature ladder: it matches when the
// temperature is below the bound. Layer, when set, contributes a companion
// garment to the outerwear set.
type bandRule struct {
	below float64
	label string
	layer string
}

// catchAll marks the final, always-matching tier of a ladder.
var catchAll = math.Inf(1)

var topBands = []bandRule{
	{below: 32, label: "Thermal base layer", layer: "Heavy sweater"},
	{below: 50, label: "Long sleeve shirt", layer: "Sweater"},
	{below: 65, label: "Long sleeve shirt"},
	{below: 75, label: "Short sleeve t-shirt"},
	{below: catchAll, label: "T-shirt"},
}

var bottomBands = []bandRule{
	{below: 35, label: "Thermal leggings", layer: "Wool pants"},
	{below: 55, label: "Chinos or jeans"},
	{below: 75, label: "Joggers"},
	{below: catchAll, label: "Shorts"},
}

// Coat ladder has no catch-all: mild temperatures get no coat, and only then
// can the wind rule contribute a windbreaker instead.
var coatBands = []bandRule{
	{below: 30, label: "Heavy winter coat"},
	{below: 50, label: "Insulated jacket"},
	{below: 65, label: "Light jacket"},
}

func matchBand(bands []bandRule, tempF float64) (bandRule, bool) {
	for _, b := range bands {
		if tempF < b.below {
			return b, true
		}
	}
	return bandRule{}, false
}

// Recommend produces the flattened, ordered outfit for the given conditions:
// exactly one top, one bottom and one pair of shoes, then outerwear and
// accessories in the order their rules fired. Duplicate labels collapse to
// the first occurrence. Total over all real-valued inputs.
func Recommend(c Conditions) []string {
	var outerwear, accessories []string

	top, _ := matchBand(topBands, c.TempF)
	if top.layer != "" {
		outerwear = append(outerwear, top.layer)
	}

	bottom, _ := matchBand(bottomBands, c.TempF)
	if bottom.layer != "" {
		outerwear = append(outerwear, bottom.layer)
	}

	if coat, ok := matchBand(coatBands, c.TempF); ok {
		outerwear = append(outerwear, coat.label)
	} else if c.WindMph > windbreakerWindMph {
		outerwear = append(outerwear, "Windbreaker")
	}

	if c.RainPct > rainPctThreshold {
		outerwear = append(outerwear, "Raincoat")
		accessories = append(accessories, "Umbrella")
	}

	// Rain overrides the temperature-based shoe choice.
	var shoes string
	switch {
	case c.RainPct > rainPctThreshold:
		shoes = "Waterproof boots"
	case c.TempF < freezingF:
		shoes = "Insulated boots"
	default:
		shoes = "Sneakers"
	}

	if c.CloudPct < sunnyCloudPct && c.Period != Night {
		accessories = append(accessories, "Sunglasses")
	}

	// The freezing bundle and the night scarf are exclusive branches: only
	// one scarf-type accessory is ever added.
	if c.TempF < freezingF {
		accessories = append(accessories, "Scarf", "Gloves", "Beanie")
	} else if c.Period == Night && c.TempF < nightScarfTempF {
		accessories = append(accessories, "Scarf or hoodie")
	}

	items := make([]string, 0, 3+len(outerwear)+len(accessories))
	items = append(items, top.label, bottom.label, shoes)
	items = append(items, outerwear...)
	items = append(items, accessories...)
	return dedupe(items)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
