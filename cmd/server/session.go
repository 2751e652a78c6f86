package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/clive/apps/uigen/internal/config"
	"github.com/iammorganparry/clive/apps/uigen/internal/store"
)

func newSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect persisted session snapshots",
	}
	cmd.AddCommand(newSessionShowCommand(), newSessionRemoveCommand())
	return cmd
}

func newSessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a persisted session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := openSnapshots()
			if err != nil {
				return err
			}
			defer snapshots.Close()

			snap, err := snapshots.Load(args[0])
			if err != nil {
				return fmt.Errorf("load session %s: %w", args[0], err)
			}
			if snap == nil {
				return fmt.Errorf("session %s not found", args[0])
			}

			out, err := store.EncodeSnapshot(snap)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newSessionRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete persisted sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := openSnapshots()
			if err != nil {
				return err
			}
			defer snapshots.Close()

			for _, id := range args {
				if err := snapshots.Delete(id); err != nil {
					return fmt.Errorf("delete session %s: %w", id, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
			}
			return nil
		},
	}
}

// openSnapshots opens the configured backend without requiring model settings.
func openSnapshots() (store.Snapshots, error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return store.OpenSnapshots(cfg.SessionBackend, cfg.SessionsDir)
}
