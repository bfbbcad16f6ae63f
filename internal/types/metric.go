package types

import "fmt"

// TrackedMetric is a skill whose cumulative competition progress is polled
type TrackedMetric string

const (
	MetricAttack       TrackedMetric = "attack"
	MetricDefence      TrackedMetric = "defence"
	MetricStrength     TrackedMetric = "strength"
	MetricHitpoints    TrackedMetric = "hitpoints"
	MetricRanged       TrackedMetric = "ranged"
	MetricPrayer       TrackedMetric = "prayer"
	MetricMagic        TrackedMetric = "magic"
	MetricCooking      TrackedMetric = "cooking"
	MetricWoodcutting  TrackedMetric = "woodcutting"
	MetricFletching    TrackedMetric = "fletching"
	MetricFishing      TrackedMetric = "fishing"
	MetricFiremaking   TrackedMetric = "firemaking"
	MetricCrafting     TrackedMetric = "crafting"
	MetricSmithing     TrackedMetric = "smithing"
	MetricMining       TrackedMetric = "mining"
	MetricHerblore     TrackedMetric = "herblore"
	MetricAgility      TrackedMetric = "agility"
	MetricThieving     TrackedMetric = "thieving"
	MetricSlayer       TrackedMetric = "slayer"
	MetricFarming      TrackedMetric = "farming"
	MetricRunecrafting TrackedMetric = "runecrafting"
	MetricHunter       TrackedMetric = "hunter"
	MetricConstruction TrackedMetric = "construction"
)

// DefaultTrackedMetrics are polled when the config doesn't list any
var DefaultTrackedMetrics = []TrackedMetric{
	MetricMining,
	MetricFishing,
	MetricWoodcutting,
	MetricHunter,
}

var supportedMetrics = map[TrackedMetric]struct{}{
	MetricAttack:       {},
	MetricDefence:      {},
	MetricStrength:     {},
	MetricHitpoints:    {},
	MetricRanged:       {},
	MetricPrayer:       {},
	MetricMagic:        {},
	MetricCooking:      {},
	MetricWoodcutting:  {},
	MetricFletching:    {},
	MetricFishing:      {},
	MetricFiremaking:   {},
	MetricCrafting:     {},
	MetricSmithing:     {},
	MetricMining:       {},
	MetricHerblore:     {},
	MetricAgility:      {},
	MetricThieving:     {},
	MetricSlayer:       {},
	MetricFarming:      {},
	MetricRunecrafting: {},
	MetricHunter:       {},
	MetricConstruction: {},
}

func (m TrackedMetric) String() string {
	return string(m)
}

// ParseTrackedMetric returns an error for metrics the competition provider doesn't track as skills
func ParseTrackedMetric(s string) (TrackedMetric, error) {
	m := TrackedMetric(s)
	if _, ok := supportedMetrics[m]; !ok {
		return "", fmt.Errorf("unsupported metric %q", s)
	}
	return m, nil
}
