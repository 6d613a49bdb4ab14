package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jimezsa/jobboard/internal/auth"
	"github.com/jimezsa/jobboard/internal/backend"
)

type LoginCmd struct {
	Email         string `help:"Account email." env:"JOBBOARD_EMAIL"`
	Password      string `help:"Account password. Prefer --password-stdin." env:"JOBBOARD_PASSWORD"`
	PasswordStdin bool   `name:"password-stdin" help:"Read the password from stdin."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	password := c.Password
	if c.PasswordStdin {
		var err error
		password, err = readSecret(ctx.In)
		if err != nil {
			return err
		}
	}

	app, err := ctx.Services()
	if err != nil {
		return err
	}
	session, err := app.Session.Login(context.Background(), backend.Credentials{Email: c.Email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	ctx.UI.Successf("Signed in as %s (expires %s)", session.Email, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

type RegisterCmd struct {
	Email           string `required:"" help:"Account email."`
	Password        string `required:"" help:"Password, at least 6 characters."`
	ConfirmPassword string `name:"confirm-password" required:"" help:"Repeat the password."`
	Name            string `required:"" help:"First name."`
	Surname         string `required:"" help:"Last name."`
	Phone           string `help:"Phone number."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	app, err := ctx.Services()
	if err != nil {
		return err
	}
	err = app.Backend.Register(context.Background(), backend.Registration{
		Email:           strings.TrimSpace(c.Email),
		Password:        c.Password,
		ConfirmPassword: c.ConfirmPassword,
		Name:            strings.TrimSpace(c.Name),
		Surname:         strings.TrimSpace(c.Surname),
		PhoneNumber:     strings.TrimSpace(c.Phone),
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	ctx.UI.Successf("Registered %s. Check your inbox for the confirmation link.", strings.TrimSpace(c.Email))
	return nil
}

type ConfirmEmailCmd struct {
	UserID string `name:"user-id" required:"" help:"User id from the confirmation link."`
	Token  string `required:"" help:"Token from the confirmation link."`
}

func (c *ConfirmEmailCmd) Run(ctx *Context) error {
	app, err := ctx.Services()
	if err != nil {
		return err
	}
	if err := app.Backend.ConfirmEmail(context.Background(), backend.Confirmation{UserID: c.UserID, Token: c.Token}); err != nil {
		return fmt.Errorf("email confirmation failed: %w", err)
	}
	ctx.UI.Successf("Email confirmed. You can now log in.")
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	app, err := ctx.Services()
	if err != nil {
		return err
	}
	if err := app.Session.Logout(); err != nil {
		return err
	}
	ctx.UI.Infof("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	app, err := ctx.Services()
	if err != nil {
		return err
	}
	session := app.Session.Current()
	if session == nil {
		return fmt.Errorf("%w: not signed in", ErrLoginRequired)
	}
	return writeSession(ctx, session)
}

func writeSession(ctx *Context, session *auth.Session) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"userId":    session.UserID,
			"email":     session.Email,
			"expiresAt": session.ExpiresAt.UTC(),
		})
	}
	if ctx.PlainText {
		_, err := fmt.Fprintf(ctx.Out, "%s\t%s\t%s\n", session.UserID, session.Email, session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"))
		return err
	}
	_, err := fmt.Fprintf(ctx.Out, "%s (%s), session expires %s\n", session.Email, session.UserID, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return err
}

func readSecret(in io.Reader) (string, error) {
	if in == nil {
		return "", fmt.Errorf("no stdin to read the password from")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
