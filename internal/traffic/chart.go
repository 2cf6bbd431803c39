package traffic

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"

	"ftth-net.id/dashboard/internal/models"
)

const (
	TickLayout  = "15:04"
	LabelLayout = "02 Jan 2006, 15:04"
)

// FormatSpeed renders a Kbps value the way the chart tooltip shows it.
func FormatSpeed(kbps float64) string {
	if kbps >= 1000 {
		return fmt.Sprintf("%.1f Mbps", kbps/1000)
	}
	return strconv.FormatFloat(kbps, 'f', -1, 64) + " Kbps"
}

// FormatAxis is the shorter y-axis label.
func FormatAxis(kbps float64) string {
	if kbps >= 1000 {
		return strconv.FormatFloat(kbps/1000, 'f', -1, 64) + "M"
	}
	return strconv.FormatFloat(kbps, 'f', -1, 64) + "K"
}

type Point struct {
	Timestamp    string  `json:"timestamp"`
	Tick         string  `json:"tick"`
	Label        string  `json:"label"`
	Download     float64 `json:"download"`
	Upload       float64 `json:"upload"`
	DownloadText string  `json:"download_text"`
	UploadText   string  `json:"upload_text"`
}

type Series struct {
	Title        string  `json:"title"`
	RouterName   string  `json:"router_name"`
	Points       []Point `json:"points"`
	PeakDownload float64 `json:"peak_download"`
	PeakUpload   float64 `json:"peak_upload"`
	AvgDownload  float64 `json:"avg_download"`
	AvgUpload    float64 `json:"avg_upload"`
}

// Chart turns one interface's samples into a chart series. Times are shown
// in loc.
func Chart(item Monitored, loc *time.Location) Series {
	if loc == nil {
		loc = time.Local
	}
	s := Series{
		Title:      item.Name,
		RouterName: item.RouterName(),
		Points:     make([]Point, 0, len(item.History)),
	}

	down := make(stats.Float64Data, 0, len(item.History))
	up := make(stats.Float64Data, 0, len(item.History))
	for _, sample := range item.History {
		s.Points = append(s.Points, point(sample, loc))
		down = append(down, sample.DownloadSpeed)
		up = append(up, sample.UploadSpeed)
	}

	if len(down) > 0 {
		s.PeakDownload, _ = down.Max()
		s.PeakUpload, _ = up.Max()
		s.AvgDownload, _ = down.Mean()
		s.AvgUpload, _ = up.Mean()
	}
	return s
}

func point(sample models.TrafficSample, loc *time.Location) Point {
	p := Point{
		Timestamp:    sample.Timestamp,
		Download:     sample.DownloadSpeed,
		Upload:       sample.UploadSpeed,
		DownloadText: FormatSpeed(sample.DownloadSpeed),
		UploadText:   FormatSpeed(sample.UploadSpeed),
	}
	if t, err := dateparse.ParseAny(sample.Timestamp); err == nil {
		t = t.In(loc)
		p.Tick = t.Format(TickLayout)
		p.Label = t.Format(LabelLayout)
	}
	return p
}
