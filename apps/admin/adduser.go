package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/user"
)

// addUser updates or creates an active user.User
func (cli *commandLine) addUser(ctx context.Context, name, uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	if name = core.CleanString(name); name == "" {
		name = uname
	}
	var roles []string
	if isAdmin {
		roles = []string{user.RoleAdminOwner}
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err == nil {
		active := true
		if _, err = cli.usrSvc.Update(ctx, usr, user.UpdateUser{
			Name:     name,
			Username: uname,
			Email:    email,
			IsActive: &active,
			Roles:    roles,
			Password: pwd,
		}); err != nil {
			return errors.Wrap(err, "updating user")
		}
		cli.logger.Info(fmt.Sprintf("user %q updated", uname))
		return nil
	}
	if !core.IsNotFound(err) {
		return errors.Wrap(err, "finding user")
	}

	if _, err = cli.usrSvc.Create(ctx, user.NewUser{
		Name:     name,
		Username: uname,
		Email:    email,
		Password: pwd,
		Roles:    roles,
	}); err != nil {
		return errors.Wrap(err, "creating user")
	}
	cli.logger.Info(fmt.Sprintf("user %q created", uname))
	return nil
}
