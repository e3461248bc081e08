package clverify

import (
	"context"
	"runtime"

	"github.com/privacybydesign/clverify/big"
	"golang.org/x/sync/errgroup"
)

// Presentation bundles the arguments of a single Verify call.
type Presentation struct {
	Input    *ProofInput
	Proof    *FullProof
	Revealed map[string]*big.Int
	Nonce    *big.Int
}

// VerifyBatch verifies independent presentations in parallel, using at most
// GOMAXPROCS goroutines. The i-th result is the outcome of Verify on the i-th
// presentation. The first error cancels the remaining verifications and is returned.
func (v *Verifier) VerifyBatch(ctx context.Context, presentations []Presentation) ([]bool, error) {
	results := make([]bool, len(presentations))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range presentations {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := &presentations[i]
			ok, err := v.Verify(p.Input, p.Proof, p.Revealed, p.Nonce)
			if err != nil {
				return prefix(err, "presentation %d", i)
			}
			results[i] = ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
