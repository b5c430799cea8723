// Package routes maps page paths to access decisions. The guard is a pure
// function of (authenticated, role, path); nothing is cached between calls.
package routes

import "github.com/awsomeshop/awsomeshop/internal/model"

const (
	LoginPath    = "/login"
	EmployeeHome = "/products"
	AdminHome    = "/admin/dashboard"
)

// Pages reachable by any authenticated user.
var employeePages = map[string]bool{
	"/products":    true,
	"/redemptions": true,
	"/points":      true,
	"/profile":     true,
}

// Pages reachable by admins only.
var adminPages = map[string]bool{
	"/admin/dashboard": true,
	"/admin/users":     true,
	"/admin/products":  true,
	"/admin/points":    true,
	"/admin/orders":    true,
	"/admin/reports":   true,
}

// Decision is the outcome of a navigation attempt: either the page is
// allowed, or the caller must go to RedirectTo instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

func homeFor(role string) string {
	if role == model.RoleAdmin {
		return AdminHome
	}
	return EmployeeHome
}

// Resolve decides what happens when a visitor in the given state requests a
// path. Unknown paths fall back to the login page even for authenticated
// visitors; that fail-closed default is deliberate.
func Resolve(authenticated bool, role, path string) Decision {
	if path == LoginPath {
		if authenticated {
			return redirect(homeFor(role))
		}
		return allow()
	}

	if !authenticated {
		return redirect(LoginPath)
	}

	switch {
	case path == "/":
		return redirect(EmployeeHome)
	case path == "/admin":
		if role == model.RoleAdmin {
			return redirect(AdminHome)
		}
		return redirect(EmployeeHome)
	case adminPages[path]:
		if role == model.RoleAdmin {
			return allow()
		}
		// Employees are silently sent home, not shown an error.
		return redirect(EmployeeHome)
	case employeePages[path]:
		return allow()
	}

	return redirect(LoginPath)
}
