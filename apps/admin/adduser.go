package main

import (
	"fmt"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/user"
)

// addUser creates a user with the given role.
func (cli *commandLine) addUser(email, name, role, pwd string) error {
	email = core.CleanString(email, true /* lower */)
	name = core.CleanString(name)
	role = core.CleanString(role, true /* lower */)

	valid := false
	for _, r := range user.AllRoles {
		valid = valid || role == r
	}
	if !valid {
		return fmt.Errorf("unknown role %q", role)
	}

	usr, err := cli.usrSvc.Create(user.User{
		Email:     email,
		Name:      name,
		Role:      role,
		IsNewUser: role == user.RoleStudent,
	}, pwd)
	if err != nil {
		return err
	}

	fmt.Printf("user %s (%s) created\n", usr.Email, usr.ID)
	return nil
}
