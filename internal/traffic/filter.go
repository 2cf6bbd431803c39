package traffic

import (
	"strings"
	"time"

	"ftth-net.id/dashboard/internal/models"
)

const (
	AllRouters = "all"
	dateLayout = "2006-01-02"
	LiveWindow = 20
)

type Filter struct {
	Date   string `json:"date"`
	Search string `json:"search"`
	Router string `json:"router"`
}

// Today is the default date filter, as a UTC calendar date.
func Today(now time.Time) string {
	return now.UTC().Format(dateLayout)
}

// ValidDate reports whether d is a YYYY-MM-DD date.
func ValidDate(d string) bool {
	_, err := time.Parse(dateLayout, d)
	return err == nil
}

func sampleDate(ts string) string {
	return strings.SplitN(ts, "T", 2)[0]
}

// FilterByDate keeps samples whose timestamp falls on date.
func FilterByDate(samples []models.TrafficSample, date string) []models.TrafficSample {
	out := make([]models.TrafficSample, 0, len(samples))
	for _, s := range samples {
		if sampleDate(s.Timestamp) == date {
			out = append(out, s)
		}
	}
	return out
}

// Apply narrows items by interface name and router, then trims every
// history to the selected day. The snapshot itself is left untouched.
func Apply(items []Monitored, f Filter) []Monitored {
	search := strings.ToLower(f.Search)
	out := make([]Monitored, 0, len(items))
	for _, item := range items {
		if !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if f.Router != "" && f.Router != AllRouters && item.RouterName() != f.Router {
			continue
		}
		out = append(out, Monitored{
			Interface: item.Interface,
			History:   FilterByDate(item.History, f.Date),
		})
	}
	return out
}

// UniqueRouters lists router names in first-seen order.
func UniqueRouters(items []Monitored) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, item := range items {
		name := item.RouterName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// KeepLast returns at most the n most recent samples of an ordered history.
func KeepLast(samples []models.TrafficSample, n int) []models.TrafficSample {
	if len(samples) <= n {
		return samples
	}
	return samples[len(samples)-n:]
}

// Visible keeps the items whose interface appears in allowed, taking the
// interface record from allowed.
func Visible(items []Monitored, allowed []models.Interface) []Monitored {
	byID := make(map[int]models.Interface, len(allowed))
	for _, iface := range allowed {
		byID[iface.ID] = iface
	}
	out := make([]Monitored, 0, len(items))
	for _, item := range items {
		if iface, ok := byID[item.ID]; ok {
			out = append(out, Monitored{Interface: iface, History: item.History})
		}
	}
	return out
}
