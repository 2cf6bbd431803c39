package handlers

import (
	"fmt"
	"net/http"

	"ftth-net.id/dashboard/internal/traffic"
)

func (h *Handler) trafficFilter(w http.ResponseWriter, r *http.Request) (traffic.Filter, bool) {
	q := r.URL.Query()
	f := traffic.Filter{
		Date:   q.Get("date"),
		Search: q.Get("search"),
		Router: q.Get("router"),
	}
	if f.Date == "" {
		f.Date = traffic.Today(h.now())
	}
	if !traffic.ValidDate(f.Date) {
		h.sendJSON(w, http.StatusBadRequest, Response{Success: false, Error: "date must be YYYY-MM-DD"})
		return f, false
	}
	if f.Router == "" {
		f.Router = traffic.AllRouters
	}
	return f, true
}

// snapshot returns the traffic data the caller may see. The interface list
// is always read with the caller's token so the backend decides access; the
// shared histories are reused while fresh and reloaded with that token once
// they are older than the refresh interval or miss one of its interfaces.
func (h *Handler) snapshot(r *http.Request) (traffic.Snapshot, error) {
	api := h.client(r)
	interfaces, err := api.ListInterfaces(r.Context())
	if err != nil {
		return traffic.Snapshot{}, err
	}
	snap := h.poller.Snapshot()
	visible := traffic.Visible(snap.Items, interfaces)
	if h.poller.Stale(h.now()) || len(visible) < len(interfaces) {
		h.poller.RefreshWith(r.Context(), api, interfaces)
		snap = h.poller.Snapshot()
		visible = traffic.Visible(snap.Items, interfaces)
	}
	snap.Items = visible
	return snap, nil
}

func (h *Handler) Traffic(w http.ResponseWriter, r *http.Request) {
	f, ok := h.trafficFilter(w, r)
	if !ok {
		return
	}

	snap, err := h.snapshot(r)
	if err != nil {
		h.fail(w, r, err, "Failed to load traffic data.")
		return
	}

	items := traffic.Apply(snap.Items, f)
	charts := make([]traffic.Series, 0, len(items))
	for _, item := range items {
		charts = append(charts, traffic.Chart(item, h.location))
	}

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"filter":       f,
			"routers":      traffic.UniqueRouters(snap.Items),
			"interfaces":   items,
			"charts":       charts,
			"last_updated": snap.UpdatedAt,
			"is_today":     f.Date == traffic.Today(h.now()),
		},
	})
}

func (h *Handler) SyncTraffic(w http.ResponseWriter, r *http.Request) {
	if err := h.poller.SyncNow(r.Context(), h.client(r)); err != nil {
		h.fail(w, r, err, "Failed to reach the routers.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Latest traffic data fetched from the routers.",
		Data:    map[string]interface{}{"last_updated": h.poller.Snapshot().UpdatedAt},
	})
}

// LiveTraffic returns the most recent samples of one interface.
func (h *Handler) LiveTraffic(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	samples, err := h.client(r).TrafficForInterface(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load live traffic.")
		return
	}
	recent := traffic.KeepLast(traffic.SortSamples(samples), traffic.LiveWindow)

	series := traffic.Chart(traffic.Monitored{History: recent}, h.location)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"interface_id": id,
		"samples":      recent,
		"chart":        series,
	}})
}

func (h *Handler) ExportTraffic(w http.ResponseWriter, r *http.Request) {
	f, ok := h.trafficFilter(w, r)
	if !ok {
		return
	}

	snap, err := h.snapshot(r)
	if err != nil {
		h.fail(w, r, err, "Failed to load traffic data.")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="traffic-%s.csv"`, f.Date))
	if err := traffic.WriteCSV(w, traffic.Apply(snap.Items, f)); err != nil {
		h.logger.Error("Traffic export failed", "error", err.Error())
	}
}
