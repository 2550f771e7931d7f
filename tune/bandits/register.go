package bandits

import (
	"fmt"

	"github.com/czxttkl/autotune/tune"
)

func init() {
	tune.NewBanditFunc = func(family tune.Family, costs tune.CostEstimates, seed int64) tune.Bandit {
		switch family {
		case tune.FamilyRandomChoice:
			return NewRandomChoice(costs, seed)
		case tune.FamilyGaussian:
			return NewGaussian(costs, seed)
		default:
			panic(fmt.Sprintf("bandits: no bandit constructor for family %s", family))
		}
	}
}
