// Package gate decides which client views an identity may navigate to.
//
// The gate only shapes navigation for a well-behaved client. It is not access
// control: the server's token check and owner scoping are what enforce it.
package gate

import "github.com/mobilemart/marketplace/internal/client/session"

// Decision is the outcome of Authorize.
type Decision int

const (
	Admit Decision = iota
	RedirectToLogin
	RedirectToError
)

func (d Decision) String() string {
	switch d {
	case Admit:
		return "admit"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToError:
		return "redirect-to-error"
	default:
		return "unknown"
	}
}

// Authorize applies, in order: logged out → RedirectToLogin; role not among
// allowedRoles → RedirectToError; otherwise Admit. No roles admits any
// logged-in identity.
func Authorize(state session.State, allowedRoles ...string) Decision {
	if !state.LoggedIn {
		return RedirectToLogin
	}
	if len(allowedRoles) == 0 {
		return Admit
	}
	for _, r := range allowedRoles {
		if state.Role == r {
			return Admit
		}
	}
	return RedirectToError
}
