package traffic

import (
	"io"

	"github.com/gocarina/gocsv"
)

type exportRow struct {
	Interface string  `csv:"interface"`
	Router    string  `csv:"router"`
	Timestamp string  `csv:"timestamp"`
	Download  float64 `csv:"download_kbps"`
	Upload    float64 `csv:"upload_kbps"`
}

// WriteCSV writes one row per sample of the (already filtered) items.
func WriteCSV(w io.Writer, items []Monitored) error {
	rows := make([]*exportRow, 0)
	for _, item := range items {
		for _, s := range item.History {
			rows = append(rows, &exportRow{
				Interface: item.Name,
				Router:    item.RouterName(),
				Timestamp: s.Timestamp,
				Download:  s.DownloadSpeed,
				Upload:    s.UploadSpeed,
			})
		}
	}
	return gocsv.Marshal(rows, w)
}
