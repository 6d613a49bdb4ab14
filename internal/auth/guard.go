package auth

import "strings"

const LoginPath = "/login"

// PublicPaths are reachable without a session.
var PublicPaths = []string{"/login", "/register", "/confirm-email"}

// Decision is the outcome of a route check. When Allowed is false the caller
// should go to Redirect and come back to From after signing in.
type Decision struct {
	Allowed  bool
	Redirect string
	From     string
}

type sessionChecker interface {
	IsAuthenticated() bool
}

type Guard struct {
	session sessionChecker
}

func NewGuard(session sessionChecker) Guard {
	return Guard{session: session}
}

// Check decides whether path may be shown.
func (g Guard) Check(path string) Decision {
	path = normalizePath(path)
	if IsPublic(path) {
		return Decision{Allowed: true}
	}
	if g.session != nil && g.session.IsAuthenticated() {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LoginPath, From: path}
}

func IsPublic(path string) bool {
	path = normalizePath(path)
	for _, public := range PublicPaths {
		if path == public || strings.HasPrefix(path, public+"/") {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
