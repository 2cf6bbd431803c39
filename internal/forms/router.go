package forms

import (
	"strings"

	"ftth-net.id/dashboard/internal/models"
)

const (
	DefaultRouterPort       = 8728
	DefaultRouterType       = "MikroTik"
	DefaultRouterRemoteType = "API"

	ProbeFallbackMessage = "Unable to reach the router. Check IP/User/Pass."
	probeMissingFields   = "Fill in the IP address, username and password first."
)

type RouterForm struct {
	Name       string `json:"router_name" validate:"required"`
	Address    string `json:"router_address" validate:"required"`
	Port       int    `json:"router_port" validate:"min=1,max=65535"`
	Status     string `json:"router_status" validate:"omitempty,oneof=Enable Disable"`
	Type       string `json:"router_type"`
	RemoteType string `json:"router_remote_type"`
	Username   string `json:"router_username" validate:"required"`
	Password   string `json:"router_password"`
}

// NewRouterForm returns the blank create form.
func NewRouterForm() RouterForm {
	return RouterForm{
		Port:       DefaultRouterPort,
		Status:     models.RouterDisabled,
		Type:       DefaultRouterType,
		RemoteType: DefaultRouterRemoteType,
	}
}

// RouterFormFrom loads a stored router for editing. The password is never echoed back.
func RouterFormFrom(r models.Router) RouterForm {
	return RouterForm{
		Name:       r.Name,
		Address:    r.Address,
		Port:       r.Port,
		Status:     r.Status,
		Type:       r.Type,
		RemoteType: r.RemoteType,
		Username:   r.Username,
	}
}

func (f *RouterForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.Username = strings.TrimSpace(f.Username)
	if f.Port == 0 {
		f.Port = DefaultRouterPort
	}
	if f.RemoteType == "" {
		f.RemoteType = DefaultRouterRemoteType
	}
	if f.Status == "" {
		f.Status = models.RouterDisabled
	}
}

// Validate checks a submission. A new router needs a password; an edit may
// leave it blank to keep the stored one.
func (f *RouterForm) Validate(editing bool) error {
	f.normalize()
	errs := Errors{}
	check(f, errs)
	if !editing && f.Password == "" {
		errs.add("router_password", "router_password is required")
	}
	return errs.orNil()
}

// ValidateProbe checks the fields a connection test needs.
func (f *RouterForm) ValidateProbe(editing bool) error {
	f.normalize()
	if f.Address == "" || f.Username == "" || (!editing && f.Password == "") {
		return Errors{"form": probeMissingFields}
	}
	return nil
}

func (f RouterForm) Router() models.Router {
	return models.Router{
		Name:       f.Name,
		Address:    f.Address,
		Port:       f.Port,
		Status:     f.Status,
		Type:       f.Type,
		RemoteType: f.RemoteType,
		Username:   f.Username,
		Password:   f.Password,
	}
}

// DetectedType renders a probe result as "<board> v<version>".
func DetectedType(info models.SystemInfo) string {
	board := info.BoardName
	if board == "" {
		board = info.Model
	}
	if board == "" {
		board = DefaultRouterType
	}
	if info.Version == "" {
		return board
	}
	return board + " v" + info.Version
}

// ApplyProbeSuccess marks the router reachable and fills in what the device
// reported. An operator-entered name is kept.
func (f *RouterForm) ApplyProbeSuccess(info models.SystemInfo) {
	f.Status = models.RouterEnabled
	f.Type = DetectedType(info)
	if f.Name == "" && info.Identity != "" {
		f.Name = info.Identity
	}
}

func (f *RouterForm) ApplyProbeFailure() {
	f.Status = models.RouterDisabled
}
