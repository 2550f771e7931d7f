package bandits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czxttkl/autotune/tune"
)

func TestRegister_WiresBothFamilies(t *testing.T) {
	require.NotNil(t, tune.NewBanditFunc)

	b := tune.NewBanditFunc(tune.FamilyRandomChoice, twoArmCosts(), 0)
	assert.IsType(t, &RandomChoice{}, b)

	b = tune.NewBanditFunc(tune.FamilyGaussian, twoArmCosts(), 0)
	assert.IsType(t, &Gaussian{}, b)
}

func TestRegister_NoneFamily_Panics(t *testing.T) {
	assert.Panics(t, func() {
		tune.NewBanditFunc(tune.FamilyNone, twoArmCosts(), 0)
	})
}

func TestRegister_DispatcherEndToEnd(t *testing.T) {
	// GIVEN a dispatcher wired to the real bandit implementations
	d := tune.NewDispatcher()
	d.SetActiveFamily(tune.FamilyGaussian)

	// WHEN a choice is made and an observation reported
	choice := d.Choose(tune.FamilyGaussian, "conv2d/e2e", twoArmCosts)
	d.Update(tune.FamilyGaussian, "conv2d/e2e", choice, 500)

	// THEN the choice is a real arm and counted
	assert.Contains(t, []tune.Implementation{tune.Conv2DNative, tune.Conv2DMKL}, choice)
	assert.Equal(t, uint64(1), d.TimesChosen(choice))
}
