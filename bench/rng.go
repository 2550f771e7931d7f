package bench

import (
	"hash/fnv"
	"math/rand"
)

// kernelRNGs hands out one deterministic RNG per kernel so that adding or
// reordering kernels does not perturb the latency streams of the others.
//
// Derivation: kernelSeed = masterSeed XOR fnv1a64(kernelName).
type kernelRNGs struct {
	masterSeed int64
	rngs       map[string]*rand.Rand
}

func newKernelRNGs(masterSeed int64) *kernelRNGs {
	return &kernelRNGs{
		masterSeed: masterSeed,
		rngs:       make(map[string]*rand.Rand),
	}
}

// forKernel returns the RNG for the named kernel, creating it lazily.
// The same name always returns the same *rand.Rand instance.
func (k *kernelRNGs) forKernel(name string) *rand.Rand {
	if rng, ok := k.rngs[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(k.masterSeed ^ fnv1a64(name)))
	k.rngs[name] = rng
	return rng
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
