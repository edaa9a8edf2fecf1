package main

import (
	"fmt"

	"github.com/jmog/academy/core/user"
)

// seedDemo loads the demo accounts, skipping the ones that already exist.
func (cli *commandLine) seedDemo() error {
	if err := user.SeedDemo(cli.usrRepo); err != nil {
		return err
	}

	users, err := cli.usrRepo.QueryAllUsers()
	if err != nil {
		return err
	}

	fmt.Printf("demo accounts ready (%d users total):\n", len(users))
	for _, usr := range users {
		fmt.Printf("  %-8s %s\n", usr.Role, usr.Email)
	}
	return nil
}
