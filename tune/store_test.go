package tune

import "testing"

func TestBanditStore_GetOrCreate_UnseenKey_InvokesCostFnOnce(t *testing.T) {
	// GIVEN an empty store
	stubFactory(t, Conv2DNative)
	store := NewBanditStore(FamilyRandomChoice)
	costCalls := 0
	costFn := func() CostEstimates {
		costCalls++
		return testCosts()
	}

	// WHEN the same key is fetched twice
	first := store.GetOrCreate("conv2d/3x3", costFn)
	second := store.GetOrCreate("conv2d/3x3", costFn)

	// THEN one bandit was created, costFn ran once, and identity is stable
	if costCalls != 1 {
		t.Errorf("costFn invoked %d times, want 1", costCalls)
	}
	if first != second {
		t.Error("repeated GetOrCreate returned a different bandit instance")
	}
	if store.Len() != 1 {
		t.Errorf("store holds %d bandits, want 1", store.Len())
	}
}

func TestBanditStore_GetOrCreate_AssignsSequentialSeeds(t *testing.T) {
	// GIVEN an empty store
	created := stubFactory(t, Conv2DNative)
	store := NewBanditStore(FamilyGaussian)

	// WHEN three distinct keys are created
	store.GetOrCreate("a", testCosts)
	store.GetOrCreate("b", testCosts)
	store.GetOrCreate("c", testCosts)

	// THEN seeds are 0, 1, 2 in creation order
	for i, b := range *created {
		if b.seed != int64(i) {
			t.Errorf("bandit %d got seed %d, want %d", i, b.seed, i)
		}
	}
}

func TestBanditStore_SummarizeAll_FirstSeenKeyOrder(t *testing.T) {
	// GIVEN bandits created under keys z, a, m (not sorted order)
	created := stubFactory(t, Conv2DNative)
	store := NewBanditStore(FamilyRandomChoice)
	store.GetOrCreate("z", testCosts)
	store.GetOrCreate("a", testCosts)
	store.GetOrCreate("m", testCosts)

	// WHEN SummarizeAll runs
	store.SummarizeAll()

	// THEN each bandit was summarized with its own key, in first-seen order
	want := []CallSiteKey{"z", "a", "m"}
	for i, b := range *created {
		if len(b.summarized) != 1 || b.summarized[0] != want[i] {
			t.Errorf("bandit %d summarized with %v, want [%s]", i, b.summarized, want[i])
		}
	}
}

func TestBanditStore_Get_UnseenKey_Panics(t *testing.T) {
	stubFactory(t, Conv2DNative)
	store := NewBanditStore(FamilyRandomChoice)

	defer func() {
		if recover() == nil {
			t.Fatal("Get on an unseen key did not panic")
		}
	}()
	store.Get("never-created")
}

func TestBanditStore_Reset_ClearsEntriesAndSeedCounter(t *testing.T) {
	// GIVEN a store with two bandits
	created := stubFactory(t, Conv2DNative)
	store := NewBanditStore(FamilyRandomChoice)
	store.GetOrCreate("a", testCosts)
	old := store.GetOrCreate("b", testCosts)

	// WHEN the store is reset and a previously-seen key returns
	store.Reset()
	fresh := store.GetOrCreate("b", testCosts)

	// THEN a brand-new bandit is created and the seed counter restarted
	if store.Len() != 1 {
		t.Errorf("store holds %d bandits after reset, want 1", store.Len())
	}
	if fresh == old {
		t.Error("reset store returned the pre-reset bandit instance")
	}
	last := (*created)[len(*created)-1]
	if last.seed != 0 {
		t.Errorf("post-reset bandit got seed %d, want 0", last.seed)
	}
}
