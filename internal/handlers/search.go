package handlers

import (
	"strings"

	"ftth-net.id/dashboard/internal/models"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// SearchRouters matches name or address.
func SearchRouters(routers []models.Router, q string) []models.Router {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Router, 0, len(routers))
	for _, rt := range routers {
		if containsFold(rt.Name, q) || containsFold(rt.Address, q) {
			out = append(out, rt)
		}
	}
	return out
}

// SearchInterfaces matches the interface name, its router's name or its
// router's type.
func SearchInterfaces(ifaces []models.Interface, q string) []models.Interface {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Interface, 0, len(ifaces))
	for _, i := range ifaces {
		match := containsFold(i.Name, q)
		if !match && i.Router != nil {
			match = containsFold(i.Router.Name, q) || containsFold(i.Router.Type, q)
		}
		if match {
			out = append(out, i)
		}
	}
	return out
}

func SearchUsers(users []models.User, q string) []models.User {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if containsFold(u.Fullname, q) || containsFold(u.Email, q) {
			out = append(out, u)
		}
	}
	return out
}

func SearchPackages(pkgs []models.Package, q string) []models.Package {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Package, 0, len(pkgs))
	for _, p := range pkgs {
		if containsFold(p.Name, q) {
			out = append(out, p)
		}
	}
	return out
}
