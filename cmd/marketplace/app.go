package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/mobilemart/marketplace/internal/client/api"
	"github.com/mobilemart/marketplace/internal/client/gate"
	"github.com/mobilemart/marketplace/internal/client/session"
	"github.com/mobilemart/marketplace/internal/core/domain"
)

var errSessionExpired = errors.New("session is no longer valid, log in again")

type app struct {
	store  *session.Store
	client *api.Client
	routes *gate.Router
	out    io.Writer
	log    zerolog.Logger
}

func (a *app) init(store *session.Store, client *api.Client, out io.Writer, log zerolog.Logger) {
	a.store = store
	a.client = client
	a.routes = gate.NewRouter(gate.DefaultRoutes())
	a.out = out
	a.log = log
}

// enter applies the route gate for the view behind a command.
func (a *app) enter(path string) error {
	outcome := a.routes.Resolve(path, a.store.State())
	switch outcome.Decision {
	case gate.Admit:
		return nil
	case gate.RedirectToLogin:
		return errors.New("not logged in, run `marketplace login` first")
	default:
		return fmt.Errorf("%s is not available for role %q", path, a.store.State().Role)
	}
}

// check drops the local session when the server rejected its token.
func (a *app) check(err error) error {
	if !errors.Is(err, api.ErrAuthFailed) {
		return err
	}
	a.log.Warn().Msg("server rejected the session token")
	if lerr := a.store.Logout(); lerr != nil {
		return fmt.Errorf("%w (logout: %v)", errSessionExpired, lerr)
	}
	return errSessionExpired
}

func (a *app) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.out, format+"\n", args...)
}

func (a *app) notice(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(a.out, format+"\n", args...)
}

func (a *app) printMobiles(items []domain.Mobile) {
	if len(items) == 0 {
		a.notice("No mobiles found.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	head := color.New(color.FgCyan, color.Bold)
	head.Fprintln(w, "ID\tBRAND\tMODEL\tPRICE\tQTY")
	for _, m := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n", m.ID, m.Brand, m.Model, m.MobilePrice, m.AvailableQuantity)
	}
	_ = w.Flush()
}

func (a *app) printMobile(m *domain.Mobile) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(a.out, "%s %s\n", m.Brand, m.Model)
	fmt.Fprintf(a.out, "  id:          %s\n", m.ID)
	fmt.Fprintf(a.out, "  price:       %.2f\n", m.MobilePrice)
	fmt.Fprintf(a.out, "  quantity:    %d\n", m.AvailableQuantity)
	fmt.Fprintf(a.out, "  seller:      %s\n", m.UserID)
	if m.Description != "" {
		fmt.Fprintf(a.out, "  description: %s\n", m.Description)
	}
}
