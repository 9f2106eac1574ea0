package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE...",
		Short: "Load files in order into one store and print every entry",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, path := range args {
		if err := a.env.Load(path); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	for _, e := range a.env.Entries() {
		fmt.Fprintf(out, "%s=%s\n", e.Key, e.Value)
	}
	return nil
}
