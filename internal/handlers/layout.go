package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"ftth-net.id/dashboard/internal/middleware"
	"ftth-net.id/dashboard/internal/models"
)

type NavLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
	End  bool   `json:"end"`
}

var Navigation = []NavLink{
	{Name: "Dashboard", Href: "/admin", End: true},
	{Name: "Router Management", Href: "/admin/routers"},
	{Name: "Interface Management", Href: "/admin/interfaces"},
	{Name: "Internet Packages", Href: "/admin/packages"},
	{Name: "User Management", Href: "/admin/users"},
	{Name: "Traffic Monitor", Href: "/admin/traffic"},
	{Name: "Network Map", Href: "/admin/map"},
}

// PageTitle names the page at path. Links marked End match exactly, the
// rest by prefix.
func PageTitle(path string) string {
	for _, link := range Navigation {
		if link.End {
			if path == link.Href {
				return link.Name
			}
			continue
		}
		if strings.HasPrefix(path, link.Href) {
			return link.Name
		}
	}
	return "Dashboard"
}

func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = adminHome
	}

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"user":       middleware.GetUserFromContext(r),
			"navigation": Navigation,
			"title":      PageTitle(path),
		},
	})
}

type DashboardSummary struct {
	TotalRouters  int                  `json:"total_routers"`
	ActiveRouters int                  `json:"active_routers"`
	DownRouters   int                  `json:"down_routers"`
	TotalUsers    int                  `json:"total_users"`
	Interfaces    int                  `json:"monitored_interfaces"`
	RecentLogs    []models.ActivityLog `json:"recent_logs"`
}

const recentLogCount = 5

// Dashboard gathers the home page counters. Routers are required; users,
// interfaces and logs are best effort and stay empty when their endpoint fails.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	api := h.client(r)
	ctx := r.Context()

	var (
		routers []models.Router
		users   []models.User
		logs    []models.ActivityLog
		ifaces  []models.Interface
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		routers, err = api.ListRouters(gctx)
		return err
	})
	g.Go(func() error {
		list, err := api.ListUsers(gctx)
		if err != nil {
			h.logger.Debug("User count unavailable", "error", err.Error())
			return nil
		}
		users = list
		return nil
	})
	g.Go(func() error {
		list, err := api.ListLogs(gctx)
		if err != nil {
			h.logger.Debug("Activity logs unavailable", "error", err.Error())
			return nil
		}
		logs = list
		return nil
	})
	g.Go(func() error {
		list, err := api.ListInterfaces(gctx)
		if err != nil {
			h.logger.Debug("Interface count unavailable", "error", err.Error())
			return nil
		}
		ifaces = list
		return nil
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err, "Failed to load dashboard data.")
		return
	}

	summary := DashboardSummary{
		TotalRouters: len(routers),
		TotalUsers:   len(users),
		Interfaces:   len(ifaces),
		RecentLogs:   latestLogs(logs, recentLogCount),
	}
	for _, rt := range routers {
		if rt.Status == models.RouterEnabled {
			summary.ActiveRouters++
		} else {
			summary.DownRouters++
		}
	}

	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: summary})
}
