package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tix/internal/routes"
	"github.com/desertthunder/tix/internal/services"
	"github.com/desertthunder/tix/internal/shared"
	"github.com/urfave/cli/v3"
)

// guardProfile applies the navigation policy for the profile view: anonymous
// users are bounced away, matching the web client's router guard.
func (r *Runner) guardProfile() error {
	if routes.Guard(routes.Profile, r.auth.IsAuthenticated()) != routes.Profile {
		return fmt.Errorf("%w: run 'tix auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

// ProfileShow prints the signed-in account.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.guardProfile(); err != nil {
		return err
	}

	user, err := r.api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("Name: %s\n", user.Name)
	r.writePlain("Email: %s\n", user.Email)
	return nil
}

// ProfileUpdate updates profile fields.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.guardProfile(); err != nil {
		return err
	}

	update := services.ProfileUpdate{
		Name:  cmd.String("name"),
		Email: cmd.String("email"),
	}

	if update.Name == "" && update.Email == "" {
		return fmt.Errorf("%w: provide --name or --email", shared.ErrMissingArgument)
	}

	user, err := r.api.UpdateProfile(ctx, update)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if user != nil && user.Name != "" {
		r.auth.SetUser(user.Name)
	}

	return r.writePlain("✓ Profile updated\n")
}

// ProfilePassword changes the account password.
func (r *Runner) ProfilePassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.guardProfile(); err != nil {
		return err
	}

	update := services.PasswordUpdate{
		CurrentPassword:      cmd.String("current"),
		Password:             cmd.String("new"),
		PasswordConfirmation: cmd.String("new"),
	}

	if err := r.api.ChangePassword(ctx, update); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Password changed\n")
}
