package gate

import (
	"strings"

	"github.com/mobilemart/marketplace/internal/client/session"
	"github.com/mobilemart/marketplace/internal/core/domain"
)

const (
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathError         = "/error"
	PathLogout        = "/logout"
	PathHome          = "/"
	PathBuyerMobiles  = "/buyer/mobiles"
	PathSellerMobiles = "/seller/mobiles"
	PathSellerCreate  = "/seller/create"
)

// Route is one navigable view.
type Route struct {
	Path string
	// Public routes skip the gate entirely.
	Public bool
	Roles  []string
}

// Outcome is where navigation ends up.
type Outcome struct {
	Decision Decision
	Path     string
}

// Router resolves a requested path to the view actually shown.
type Router struct {
	routes map[string]Route
}

// DefaultRoutes is the marketplace navigation table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathLogin, Public: true},
		{Path: PathRegister, Public: true},
		{Path: PathError, Public: true},
		{Path: PathLogout, Public: true},
		{Path: PathHome},
		{Path: PathBuyerMobiles, Roles: []string{domain.RoleBuyer}},
		{Path: PathSellerMobiles, Roles: []string{domain.RoleSeller}},
		{Path: PathSellerCreate, Roles: []string{domain.RoleSeller}},
	}
}

func NewRouter(routes []Route) *Router {
	r := &Router{routes: make(map[string]Route, len(routes))}
	for _, rt := range routes {
		r.routes[rt.Path] = rt
	}
	return r
}

// Resolve applies the gate to path. Unknown paths go to the error view and
// "/" sends a logged-in identity to its role's home.
func (r *Router) Resolve(path string, state session.State) Outcome {
	path = normalize(path)

	rt, ok := r.routes[path]
	if !ok {
		return Outcome{Decision: RedirectToError, Path: PathError}
	}
	if rt.Public {
		return Outcome{Decision: Admit, Path: path}
	}

	switch d := Authorize(state, rt.Roles...); d {
	case RedirectToLogin:
		return Outcome{Decision: d, Path: PathLogin}
	case RedirectToError:
		return Outcome{Decision: d, Path: PathError}
	}

	if path == PathHome {
		return Outcome{Decision: Admit, Path: HomeFor(state.Role)}
	}
	return Outcome{Decision: Admit, Path: path}
}

// HomeFor is the landing view of role.
func HomeFor(role string) string {
	switch role {
	case domain.RoleSeller:
		return PathSellerMobiles
	case domain.RoleBuyer:
		return PathBuyerMobiles
	default:
		return PathError
	}
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = PathHome
		}
	}
	return path
}
