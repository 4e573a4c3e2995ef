package main

import (
	"fmt"
	"os"

	"github.com/fagongzi/mpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool

	// Pool flags shared by all commands
	objectSize int
	perChunk   uint32
	maxTotal   uint32
	aligned    bool
	allocator  string
)

var rootCmd = &cobra.Command{
	Use:   "mpoolctl",
	Short: "Exercise and inspect fixed size object pools",
	Long: `mpoolctl creates object pools from flags, prints their memory layout and
runs randomized get/put churn against them while checking the pool invariants.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.IntVar(&objectSize, "object-size", 64, "Object size in bytes")
	flags.Uint32Var(&perChunk, "per-chunk", 64, "Objects per chunk, power of two")
	flags.Uint32Var(&maxTotal, "max-total", 1024, "Max total objects, power of two")
	flags.BoolVar(&aligned, "align", false, "Align objects on 64 bytes")
	flags.StringVar(&allocator, "allocator", "heap", "Chunk allocator: heap or mmap")
}

func setupLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	mpool.UseLogger(l)
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
