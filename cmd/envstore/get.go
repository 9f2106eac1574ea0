package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE KEY...",
		Short: "Print the resolved value of each KEY",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.env.Load(args[0]); err != nil {
		return err
	}

	var missing []string
	out := cmd.OutOrStdout()
	for _, key := range args[1:] {
		v, ok := a.env.Get(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		fmt.Fprintln(out, v)
	}
	if len(missing) > 0 {
		return fmt.Errorf("not found: %s", strings.Join(missing, ", "))
	}
	return nil
}
