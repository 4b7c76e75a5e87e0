package main

import (
	"context"
	"fmt"
)

// runMigrate wraps the goose runner so failures name the command.
func (cli *commandLine) runMigrate(ctx context.Context, command string, args ...string) error {
	if err := cli.migrate(ctx, command, args...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	fmt.Fprintf(cli.stdout(), "migrate %s: ok\n", command)
	return nil
}
