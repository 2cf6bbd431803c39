package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ftth-net.id/dashboard/internal/models"
)

// Routers

func (c *Client) ListRouters(ctx context.Context) ([]models.Router, error) {
	var out []models.Router
	err := c.do(ctx, http.MethodGet, "/api/routers", nil, &out)
	return out, err
}

func (c *Client) GetRouter(ctx context.Context, id string) (*models.Router, error) {
	var out models.Router
	if err := c.do(ctx, http.MethodGet, "/api/routers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRouter(ctx context.Context, r models.Router) error {
	return c.do(ctx, http.MethodPost, "/api/routers/add", r, nil)
}

func (c *Client) UpdateRouter(ctx context.Context, id string, r models.Router) error {
	return c.do(ctx, http.MethodPut, "/api/routers/"+url.PathEscape(id), r, nil)
}

func (c *Client) DeleteRouter(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/routers/"+url.PathEscape(id), nil, nil)
}

type testConnectionData struct {
	SystemInfo models.SystemInfo `json:"system_info"`
}

// TestConnection asks the backend to probe a live device with the given credentials.
func (c *Client) TestConnection(ctx context.Context, r models.Router) (*models.SystemInfo, error) {
	var out testConnectionData
	if err := c.do(ctx, http.MethodPost, "/api/routers/test-connection", r, &out); err != nil {
		return nil, err
	}
	return &out.SystemInfo, nil
}

// Interfaces

type CreateInterfaceRequest struct {
	RouterID   string `json:"router_id"`
	Name       string `json:"interface_name"`
	IsExcluded int    `json:"is_excluded"`
}

func (c *Client) ListInterfaces(ctx context.Context) ([]models.Interface, error) {
	var out []models.Interface
	err := c.do(ctx, http.MethodGet, "/api/interfaces", nil, &out)
	return out, err
}

func (c *Client) GetInterface(ctx context.Context, id int) (*models.Interface, error) {
	var out models.Interface
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/interfaces/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateInterface(ctx context.Context, req CreateInterfaceRequest) error {
	return c.do(ctx, http.MethodPost, "/api/interfaces/add", req, nil)
}

func (c *Client) DeleteInterface(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/interfaces/%d", id), nil, nil)
}

func (c *Client) ToggleExclude(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/interfaces/%d/toggle-exclude", id), nil, nil)
}

// ScanInterfaces lists the live interfaces of a router.
func (c *Client) ScanInterfaces(ctx context.Context, routerID string) ([]models.ScannedInterface, error) {
	var out []models.ScannedInterface
	err := c.do(ctx, http.MethodGet, "/api/interfaces/"+url.PathEscape(routerID)+"/interfaces-scan", nil, &out)
	return out, err
}

// Packages

func (c *Client) ListPackages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	err := c.do(ctx, http.MethodGet, "/api/internetpackages", nil, &out)
	return out, err
}

func (c *Client) GetPackage(ctx context.Context, id int) (*models.Package, error) {
	var out models.Package
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/internetpackages/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePackage(ctx context.Context, p models.Package) error {
	return c.do(ctx, http.MethodPost, "/api/internetpackages/add", p, nil)
}

func (c *Client) UpdatePackage(ctx context.Context, id int, p models.Package) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/internetpackages/%d", id), p, nil)
}

func (c *Client) DeletePackage(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/internetpackages/%d", id), nil, nil)
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id int) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a user account. The user form uses it for new users too.
func (c *Client) Register(ctx context.Context, u models.User) error {
	return c.do(ctx, http.MethodPost, "/api/register", u, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id int, u models.User) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), u, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

// Activity logs

func (c *Client) ListLogs(ctx context.Context) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	err := c.do(ctx, http.MethodGet, "/api/logs", nil, &out)
	return out, err
}
