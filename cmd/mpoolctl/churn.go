package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/fagongzi/mpool"
	"github.com/spf13/cobra"
)

var (
	churnOps   int
	churnSeed  int64
	churnDebug bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "churn",
		Short: "Run random get/put churn against a pool",
		Long: `The churn command runs random get and put calls against a pool, checks the
capacity invariants after every call and verifies that handles of released objects
are detected as stale.

Example:
  mpoolctl churn --ops 100000 --per-chunk 16 --max-total 256
  mpoolctl churn --allocator mmap --align --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flagsConfig()
			cfg.debug = churnDebug
			result, err := runChurn(cfg, churnOps, churnSeed)
			if err != nil {
				return err
			}
			printStats(os.Stdout, result)
			return nil
		},
	}
	cmd.Flags().IntVar(&churnOps, "ops", 10000, "Number of get/put calls")
	cmd.Flags().Int64Var(&churnSeed, "seed", 1, "Random seed")
	cmd.Flags().BoolVar(&churnDebug, "debug", false, "Enable pool assertions")
	rootCmd.AddCommand(cmd)
}

type churnResult struct {
	stats      mpool.Stats
	staleFound int
	notifies   int
}

func runChurn(cfg poolConfig, ops int, seed int64) (churnResult, error) {
	var result churnResult
	p, err := cfg.newPool(mpool.WithName("churn"),
		mpool.WithNonEmptyCallback(func(any) { result.notifies++ }, nil))
	if err != nil {
		return result, err
	}

	rnd := rand.New(rand.NewSource(seed))
	var held []*mpool.Object
	var released []mpool.Handle
	for i := 0; i < ops; i++ {
		if len(held) == 0 || rnd.Intn(2) == 0 {
			if obj := p.Get(); obj != nil {
				held = append(held, obj)
			}
		} else {
			n := rnd.Intn(len(held))
			h := held[n].Handle()
			mpool.Put(held[n])
			held = append(held[:n], held[n+1:]...)
			released = append(released, h)
		}

		if err := checkInvariants(p, len(held)); err != nil {
			return result, fmt.Errorf("op %d: %w", i, err)
		}
	}

	for _, h := range released {
		if _, ok := p.Lookup(h); ok {
			return result, fmt.Errorf("released handle %+v still valid", h)
		}
		result.staleFound++
	}

	for _, obj := range held {
		mpool.Put(obj)
	}
	result.stats = p.Stats()
	p.Destroy()
	return result, nil
}

func checkInvariants(p *mpool.Pool, held int) error {
	perChunk, maxTotal := p.Info()
	switch {
	case p.InUse() != uint32(held):
		return fmt.Errorf("%d objects in use, %d held", p.InUse(), held)
	case p.InUse() > p.Allocated():
		return fmt.Errorf("%d objects in use, %d allocated", p.InUse(), p.Allocated())
	case p.Allocated() > maxTotal:
		return fmt.Errorf("%d objects allocated, max %d", p.Allocated(), maxTotal)
	case p.Allocated()%perChunk != 0:
		return fmt.Errorf("%d objects allocated, not a multiple of %d", p.Allocated(), perChunk)
	}
	return nil
}

func printStats(w io.Writer, result churnResult) {
	s := result.stats
	fmt.Fprintf(w, "pool:          %s\n", s.Name)
	fmt.Fprintf(w, "allocated:     %d/%d in %d chunks\n", s.Allocated, s.MaxTotal, s.Chunks)
	fmt.Fprintf(w, "gets:          %d\n", s.Gets)
	fmt.Fprintf(w, "puts:          %d\n", s.Puts)
	fmt.Fprintf(w, "exhausted:     %d\n", s.Exhausted)
	fmt.Fprintf(w, "notifies:      %d\n", s.Notifies)
	fmt.Fprintf(w, "stale handles: %d detected\n", result.staleFound)
}
