package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cclex/internal/prof"
)

var activeProfile *prof.Session

func registerProfileFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	cmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = s
	return nil
}

func stopProfiling(errOut io.Writer) {
	s := activeProfile
	activeProfile = nil
	if err := s.Stop(); err != nil {
		fmt.Fprintf(errOut, "profile: %v\n", err)
	}
}
