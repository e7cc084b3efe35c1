package service

// MaxLevel is the highest tier reachable through drinking alone. Admin
// overrides can push a user past it.
const MaxLevel = 6

// LevelThresholds holds the lifetime totals at which each tier begins,
// plus a final value used as the progress target for the top tier.
var LevelThresholds = []int{0, 10, 50, 100, 200, 500, 1000}

// LevelForDrinks derives the tier for a lifetime drink total.
func LevelForDrinks(totalDrinks int) int {
	switch {
	case totalDrinks < 10:
		return 1
	case totalDrinks < 50:
		return 2
	case totalDrinks < 100:
		return 3
	case totalDrinks < 200:
		return 4
	case totalDrinks < 500:
		return 5
	default:
		return 6
	}
}
