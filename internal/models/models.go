package models

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const (
	RouterEnabled  = "Enable"
	RouterDisabled = "Disable"
)

type Router struct {
	ID         string `json:"router_id"`
	Name       string `json:"router_name"`
	Address    string `json:"router_address"`
	Port       int    `json:"router_port"`
	Status     string `json:"router_status"`
	Type       string `json:"router_type"`
	RemoteType string `json:"router_remote_type"`
	Username   string `json:"router_username"`
	Password   string `json:"router_password,omitempty"`
}

// RouterRef is the router summary embedded in interface records.
type RouterRef struct {
	Name    string `json:"router_name"`
	Address string `json:"router_address"`
	Type    string `json:"router_type"`
}

type Interface struct {
	ID         int        `json:"interface_id"`
	RouterID   string     `json:"router_id"`
	Name       string     `json:"interface_name"`
	IsExcluded int        `json:"is_excluded"`
	Router     *RouterRef `json:"Router,omitempty"`
}

func (i Interface) RouterName() string {
	if i.Router == nil {
		return ""
	}
	return i.Router.Name
}

// ScannedInterface is one entry of a router's live interface list.
type ScannedInterface struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Running  Flag   `json:"running"`
	Disabled Flag   `json:"disabled"`
}

// Flag is a boolean that RouterOS reports as "true"/"false" strings.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = false
		return nil
	}
	v, err := cast.ToBoolE(s)
	if err != nil {
		return errors.Errorf("invalid flag %s", b)
	}
	*f = Flag(v)
	return nil
}

type Package struct {
	ID    int    `json:"package_id"`
	Name  string `json:"package_name"`
	Limit string `json:"package_limit"`
	Price int    `json:"package_price"`
	Desc  string `json:"package_desc"`
}

const (
	RoleAdmin      = 1
	RoleTechnician = 2
	RoleUser       = 3
)

func RoleName(role int) string {
	switch role {
	case RoleAdmin:
		return "Admin"
	case RoleTechnician:
		return "Technician"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Password string `json:"password,omitempty"`
	Role     int    `json:"role"`
}

type TrafficSample struct {
	ID            int     `json:"traffic_id"`
	InterfaceID   int     `json:"interface_id"`
	DownloadSpeed float64 `json:"DownloadSpeed"`
	UploadSpeed   float64 `json:"UploadSpeed"`
	Timestamp     string  `json:"timestamp"`
}

type SystemInfo struct {
	BoardName string `json:"board_name,omitempty"`
	Model     string `json:"model,omitempty"`
	Version   string `json:"version,omitempty"`
	CPU       string `json:"cpu,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
	Identity  string `json:"identity,omitempty"`
}

type ActivityLog struct {
	ID          int       `json:"log_id"`
	Executor    string    `json:"executor"`
	Type        string    `json:"log_type"`
	Status      string    `json:"log_status"`
	Description string    `json:"log_description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Topology node types.
const (
	NodeOLT    = "OLT"
	NodeODC    = "ODC"
	NodeODP    = "ODP"
	NodeRouter = "ROUTER"
	NodeTB     = "TB"
	NodeClient = "CLIENT"
)

var NodeTypes = []string{NodeODP, NodeODC, NodeOLT, NodeRouter, NodeTB, NodeClient}

func IsNodeType(t string) bool {
	for _, nt := range NodeTypes {
		if nt == t {
			return true
		}
	}
	return false
}

type ODPDetail struct {
	ID         int `json:"odp_id"`
	TotalPorts int `json:"total_ports"`
	UsedPorts  int `json:"used_ports"`
}

type OLTDetail struct {
	ID    int    `json:"olt_id"`
	Brand string `json:"brand"`
}

type ClientDetail struct {
	ID           int    `json:"client_id"`
	SubscriberID string `json:"subscriber_id"`
}

type Node struct {
	ID           int           `json:"node_id"`
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Lat          float64       `json:"lat"`
	Lng          float64       `json:"lng"`
	Description  string        `json:"description"`
	Status       string        `json:"status,omitempty"`
	ODPDetail    *ODPDetail    `json:"odp_detail,omitempty"`
	OLTDetail    *OLTDetail    `json:"olt_detail,omitempty"`
	ClientDetail *ClientDetail `json:"client_detail,omitempty"`
}

type Cable struct {
	ID           int     `json:"cable_id"`
	SourceNodeID int     `json:"source_node_id"`
	TargetNodeID int     `json:"target_node_id"`
	SourceNode   Node    `json:"source_node"`
	TargetNode   Node    `json:"target_node"`
	Type         string  `json:"cable_type"`
	Description  string  `json:"description"`
	Coordinates  string  `json:"coordinates"`
	LengthMeter  float64 `json:"length_meter"`
}

type Topology struct {
	Nodes  []Node  `json:"nodes"`
	Cables []Cable `json:"cables"`
}
