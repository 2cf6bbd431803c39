package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"ftth-net.id/dashboard/internal/handlers"
	"ftth-net.id/dashboard/internal/middleware"
)

func newRouter(h *handlers.Handler, gate *middleware.SessionGate, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()

	// ============== PUBLIC ROUTES ==============
	r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")
	r.Handle("/auth/login", limiter.Middleware(http.HandlerFunc(h.Login))).Methods("POST")
	r.Handle("/auth/register", limiter.Middleware(http.HandlerFunc(h.Register))).Methods("POST")
	r.HandleFunc("/auth/session", h.Session).Methods("GET")
	r.HandleFunc("/auth/logout", h.Logout).Methods("POST")

	// ============== SESSION ROUTES ==============
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(gate.Middleware)

	// Layout & home
	admin.HandleFunc("/layout", h.Layout).Methods("GET")
	admin.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	admin.HandleFunc("/logs", h.ActivityLogs).Methods("GET")

	// Routers
	admin.HandleFunc("/routers", h.GetRouters).Methods("GET")
	admin.HandleFunc("/routers", h.CreateRouter).Methods("POST")
	admin.HandleFunc("/routers/check-connection", h.CheckConnection).Methods("POST")
	admin.HandleFunc("/routers/{id}", h.GetRouter).Methods("GET")
	admin.HandleFunc("/routers/{id}", h.UpdateRouter).Methods("PUT")
	admin.HandleFunc("/routers/{id}", h.DeleteRouter).Methods("DELETE")
	admin.HandleFunc("/routers/{id}/scan", h.ScanRouterInterfaces).Methods("GET")

	// Interfaces
	admin.HandleFunc("/interfaces", h.GetInterfaces).Methods("GET")
	admin.HandleFunc("/interfaces", h.CreateInterface).Methods("POST")
	admin.HandleFunc("/interfaces/options", h.InterfaceOptions).Methods("GET")
	admin.HandleFunc("/interfaces/{id}", h.GetInterface).Methods("GET")
	admin.HandleFunc("/interfaces/{id}", h.UpdateInterface).Methods("PUT")
	admin.HandleFunc("/interfaces/{id}", h.DeleteInterface).Methods("DELETE")
	admin.HandleFunc("/interfaces/{id}/toggle-exclude", h.ToggleExclude).Methods("PATCH")

	// Packages
	admin.HandleFunc("/packages", h.GetPackages).Methods("GET")
	admin.HandleFunc("/packages", h.CreatePackage).Methods("POST")
	admin.HandleFunc("/packages/{id}", h.GetPackage).Methods("GET")
	admin.HandleFunc("/packages/{id}", h.UpdatePackage).Methods("PUT")
	admin.HandleFunc("/packages/{id}", h.DeletePackage).Methods("DELETE")

	// Users
	admin.HandleFunc("/users", h.GetUsers).Methods("GET")
	admin.HandleFunc("/users", h.CreateUser).Methods("POST")
	admin.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}", h.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")

	// Traffic
	admin.HandleFunc("/traffic", h.Traffic).Methods("GET")
	admin.HandleFunc("/traffic/sync-now", h.SyncTraffic).Methods("POST")
	admin.HandleFunc("/traffic/live/{id}", h.LiveTraffic).Methods("GET")
	admin.HandleFunc("/traffic/export", h.ExportTraffic).Methods("GET")

	// Network map
	admin.HandleFunc("/topology", h.Topology).Methods("GET")
	admin.HandleFunc("/topology/search", h.SearchNode).Methods("GET")
	admin.HandleFunc("/topology/nodes", h.CreateNode).Methods("POST")
	admin.HandleFunc("/topology/nodes/{id}", h.DeleteNode).Methods("DELETE")
	admin.HandleFunc("/topology/nodes/{id}/details", h.GetNodeDetails).Methods("GET")
	admin.HandleFunc("/topology/nodes/{id}/details", h.UpdateNodeDetails).Methods("PUT")
	admin.HandleFunc("/topology/cables", h.CreateCable).Methods("POST")
	admin.HandleFunc("/topology/cables/{id}/draft", h.StartCableEdit).Methods("POST")
	admin.HandleFunc("/topology/cables/{id}/draft", h.GetCableDraft).Methods("GET")
	admin.HandleFunc("/topology/cables/{id}/draft", h.CancelCableEdit).Methods("DELETE")
	admin.HandleFunc("/topology/cables/{id}/draft/points", h.AddCablePoint).Methods("POST")
	admin.HandleFunc("/topology/cables/{id}/draft/points/{index}", h.MoveCablePoint).Methods("PUT")
	admin.HandleFunc("/topology/cables/{id}/draft/points/{index}", h.RemoveCablePoint).Methods("DELETE")
	admin.HandleFunc("/topology/cables/{id}/draft/save", h.SaveCablePath).Methods("POST")

	return r
}
