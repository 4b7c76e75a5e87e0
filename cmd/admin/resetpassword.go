package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) resetPassword(ctx context.Context, uname, pwd string) error {
	if err := cli.users.ResetPassword(ctx, uname, pwd); err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout(), "password updated for %q\n", uname)
	return nil
}
