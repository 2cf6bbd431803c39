package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"ftth-net.id/dashboard/internal/models"
)

func latestLogs(logs []models.ActivityLog, n int) []models.ActivityLog {
	out := make([]models.ActivityLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ActivityLogs lists backend activity, newest first, optionally narrowed by
// type and status.
func (h *Handler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.client(r).ListLogs(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load activity logs.")
		return
	}

	logType := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")
	limit := 100
	if l, err := cast.ToIntE(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	filtered := make([]models.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if logType != "" && !strings.EqualFold(l.Type, logType) {
			continue
		}
		if status != "" && !strings.EqualFold(l.Status, status) {
			continue
		}
		filtered = append(filtered, l)
	}

	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: latestLogs(filtered, limit)})
}
