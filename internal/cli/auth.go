package cli

import (
	"context"
	"os"

	"github.com/agsavn/foodwatch/internal/auth"
	"github.com/agsavn/foodwatch/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the new account's details and attempts to create it.
//
// A rejected signup (weak password, duplicate email) is not an error: the
// session manager's message is printed and nil is returned. The password
// byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Signup(ctx, auth.SignupData{
		Name:     name,
		Email:    email,
		Password: string(password),
	})
	if !res.Success {
		printlnFn(res.Message)
		return nil
	}

	printlnFn("Welcome,", res.User.Name)
	return nil
}

// Login prompts for credentials and tries to authenticate. A failed attempt
// prints the result message and returns nil; the password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, auth.LoginData{Email: email, Password: string(password)})
	if !res.Success {
		printlnFn(res.Message)
		return nil
	}

	printlnFn("Welcome back,", res.User.Name)
	return nil
}

// Logout ends the session and discards the persisted token.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current account.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(formatUser(u))
	return nil
}
