package main

import (
	"context"
	"fmt"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

// addUser creates an account with any role, admins included.
func (cli *commandLine) addUser(ctx context.Context, req user.CreateUserRequest) error {
	created, err := cli.users.CreateUser(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout(), "created %s %q (%s)\n", created.Role, created.Username, created.ID)
	return nil
}
