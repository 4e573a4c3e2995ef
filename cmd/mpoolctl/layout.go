package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "layout",
		Short: "Show the memory layout of a pool",
		Long: `The layout command creates a pool from the flags and prints the padded
object size, the slot stride and the chunk geometry.

Example:
  mpoolctl layout --object-size 10 --align`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(os.Stdout, flagsConfig())
		},
	})
}

func runLayout(w io.Writer, cfg poolConfig) error {
	p, err := cfg.newPool()
	if err != nil {
		return err
	}
	defer p.Destroy()

	perChunk, maxTotal := p.Info()
	fmt.Fprintf(w, "object size:   %d (requested %d)\n", p.ObjectSize(), cfg.objectSize)
	fmt.Fprintf(w, "element size:  %d\n", p.ElementSize())
	fmt.Fprintf(w, "per chunk:     %d\n", perChunk)
	fmt.Fprintf(w, "max total:     %d\n", maxTotal)
	fmt.Fprintf(w, "chunk bytes:   %d\n", int(perChunk)*p.ElementSize())
	fmt.Fprintf(w, "max chunks:    %d\n", maxTotal/perChunk)
	return nil
}
