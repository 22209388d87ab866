package main

import (
	"context"
	"fmt"
)

// migrate upgrades legacy homework entries in place. Running it again is a no-op.
func (cli *commandLine) migrate(ctx context.Context) error {
	migrated, err := cli.store.MigrateHomeworkData(ctx)
	if err != nil {
		return err
	}
	if migrated {
		fmt.Fprintln(cli.out, "Homework data migrated to new format.")
	} else {
		fmt.Fprintln(cli.out, "Homework data is up to date.")
	}
	return nil
}
