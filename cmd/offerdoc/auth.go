package main

import (
	"fmt"
)

// Run executes the login command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	if err := deps.Credentials.SaveToken(deps.Ctx, c.Token); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, "Token saved. Run 'offerdoc ping' to test the connection.")
	return nil
}

// Run executes the logout command.
func (c *LogoutCmd) Run(deps *Dependencies) error {
	if err := deps.Credentials.DeleteToken(deps.Ctx); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, "Logged out.")
	return nil
}

// Run executes the ping command.
func (c *PingCmd) Run(deps *Dependencies) error {
	if err := deps.Pinger.Ping(deps.Ctx); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, "Connection OK.")
	return nil
}
