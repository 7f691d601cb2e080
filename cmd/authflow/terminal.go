package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/authgate/internal/config"
	"github.com/mmynk/authgate/internal/flow"
	"github.com/mmynk/authgate/internal/validation"
)

// errQuit ends the loop.
var errQuit = errors.New("quit")

// terminal is a line-based Navigator, Alerter and Confirmer.
type terminal struct {
	in    *bufio.Scanner
	out   io.Writer
	route flow.Route
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewScanner(in), out: out, route: flow.RouteWelcome}
}

func (t *terminal) Replace(route flow.Route) {
	t.route = route
}

func (t *terminal) Alert(title, message string) {
	fmt.Fprintf(t.out, "[%s] %s\n", title, message)
}

func (t *terminal) Confirm(title, message string) bool {
	answer, ok := t.ask(fmt.Sprintf("[%s] %s (y/N)", title, message))
	return ok && strings.EqualFold(answer, "y")
}

// ask prints label and reads one line. ok is false at end of input.
func (t *terminal) ask(label string) (string, bool) {
	fmt.Fprintf(t.out, "%s: ", label)
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimRight(t.in.Text(), "\r"), true
}

func (t *terminal) loop(ctx context.Context, app *flow.App, cfg config.Client) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var err error
		switch t.route {
		case flow.RouteWelcome:
			err = t.welcome(app)
		case flow.RouteLogin:
			err = t.login(ctx, app, cfg)
		case flow.RouteSignup:
			err = t.signup(ctx, app, cfg)
		case flow.RouteHome:
			err = t.home(ctx, app, cfg)
		default:
			return fmt.Errorf("unknown route %q", t.route)
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *terminal) welcome(app *flow.App) error {
	if app.Welcome.Resolve() {
		return nil
	}
	fmt.Fprintln(t.out, "== Welcome ==")
	choice, ok := t.ask("[l]ogin, [s]ign up, [q]uit")
	if !ok {
		return errQuit
	}
	switch strings.ToLower(choice) {
	case "l":
		t.Replace(flow.RouteLogin)
	case "s":
		t.Replace(flow.RouteSignup)
	case "q":
		return errQuit
	}
	return nil
}

func (t *terminal) login(ctx context.Context, app *flow.App, cfg config.Client) error {
	fmt.Fprintln(t.out, "== Login ==")
	email, ok := t.ask("Email (empty to go back)")
	if !ok {
		return errQuit
	}
	if email == "" {
		t.Replace(flow.RouteWelcome)
		return nil
	}
	password, ok := t.ask("Password")
	if !ok {
		return errQuit
	}

	submitCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	errs, err := app.Login.Submit(submitCtx, email, password)
	if err != nil {
		return err
	}
	t.printFieldErrors(errs)
	return nil
}

func (t *terminal) signup(ctx context.Context, app *flow.App, cfg config.Client) error {
	fmt.Fprintln(t.out, "== Sign up ==")
	email, ok := t.ask("Email (empty to go back)")
	if !ok {
		return errQuit
	}
	if email == "" {
		t.Replace(flow.RouteWelcome)
		return nil
	}
	password, ok := t.ask("Password")
	if !ok {
		return errQuit
	}
	confirm, ok := t.ask("Confirm password")
	if !ok {
		return errQuit
	}

	submitCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	errs, err := app.Signup.Submit(submitCtx, email, password, confirm)
	if err != nil {
		return err
	}
	t.printFieldErrors(errs)
	return nil
}

func (t *terminal) home(ctx context.Context, app *flow.App, cfg config.Client) error {
	if !app.Enter(flow.RouteHome) {
		return nil
	}
	p := app.Home.Profile()
	fmt.Fprintf(t.out, "== Home ==\n(%s) Welcome! %s\nUser ID: %s\n", p.Initial, p.Email, p.ShortID)

	choice, ok := t.ask("[l]ogout, [q]uit")
	if !ok {
		return errQuit
	}
	switch strings.ToLower(choice) {
	case "l":
		logoutCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if _, err := app.Home.Logout(logoutCtx); err != nil {
			return err
		}
	case "q":
		return errQuit
	}
	return nil
}

func (t *terminal) printFieldErrors(errs validation.FieldErrors) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(t.out, "  %s: %s\n", f, errs[f])
	}
}
