package cli

import (
	"context"
	"fmt"

	"github.com/agsavn/foodwatch/internal/user"
)

// formatUser renders one account as a single list line.
func formatUser(u *user.User) string {
	last := "never"
	if u.LastLogin != nil {
		last = u.LastLogin.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%-30s %-8s %-10s last login: %s", u.Email, u.Role, u.Status, last)
}

// guardAdmin reports whether the users-management commands may run. The
// store is nil in remote mode, where account administration belongs to the
// dashboard backend.
func (a *App) guardAdmin() bool {
	if !a.isAdmin() {
		printlnFn("This command requires an administrator account")
		return false
	}
	if a.store == nil {
		printlnFn("User management is not available in remote mode")
		return false
	}
	return true
}

// ListUsers prints every account in the store.
func (a *App) ListUsers(ctx context.Context) error {
	if !a.guardAdmin() {
		return nil
	}

	users, err := a.store.List(ctx)
	if err != nil {
		a.log.Error(ctx, "listing users", "error", err)
		return err
	}

	for _, u := range users {
		printlnFn(formatUser(u))
	}
	return nil
}

// Deactivate marks the account with the given email inactive. The record
// stays in the store; the account simply can no longer log in.
func (a *App) Deactivate(ctx context.Context, email string) error {
	return a.setStatus(ctx, email, user.StatusInactive)
}

// Activate re-enables a previously deactivated account.
func (a *App) Activate(ctx context.Context, email string) error {
	return a.setStatus(ctx, email, user.StatusActive)
}

func (a *App) setStatus(ctx context.Context, email string, status user.Status) error {
	if !a.guardAdmin() {
		return nil
	}

	u, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if _, err := a.store.Update(ctx, u.ID, user.Update{Status: &status}); err != nil {
		a.log.Error(ctx, "updating user status", "email", email, "error", err)
		return err
	}

	printlnFn(fmt.Sprintf("%s is now %s", u.Email, status))
	return nil
}

// RemoveUser deletes the account with the given email entirely. Admins
// cannot remove their own account; deactivate-then-remove from another
// admin account instead.
func (a *App) RemoveUser(ctx context.Context, email string) error {
	if !a.guardAdmin() {
		return nil
	}

	u, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if cur := a.session.User(); cur != nil && cur.ID == u.ID {
		printlnFn("Refusing to remove the logged-in account")
		return nil
	}

	if err := a.store.Delete(ctx, u.ID); err != nil {
		a.log.Error(ctx, "deleting user", "email", email, "error", err)
		return err
	}

	printlnFn("Removed", u.Email)
	return nil
}
