package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Ensurer creates or promotes an administrator account.
type Ensurer interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Bootstrap asks for a username (unless one is given) and a password typed
// twice, then ensures the admin account exists.
func Bootstrap(ctx context.Context, e Ensurer, username string, in *bufio.Reader, out io.Writer) error {
	var err error
	if username == "" {
		username, err = GetSimpleText(in, "Admin username", out)
		if err != nil {
			return err
		}
	}
	if username == "" {
		return errors.New("username must not be empty")
	}

	pw, err := GetPassword(out, "Enter password")
	if err != nil {
		return err
	}
	defer clear(pw)

	again, err := GetPassword(out, "Repeat password")
	if err != nil {
		return err
	}
	defer clear(again)

	if string(pw) != string(again) {
		return errors.New("passwords do not match")
	}

	created, err := e.EnsureAdmin(ctx, username, string(pw))
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(out, "Admin %q created\n", username)
	} else {
		fmt.Fprintf(out, "Account %q promoted to admin\n", username)
	}
	return nil
}
