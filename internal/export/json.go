package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Items      []jsonEntry `json:"items"`
}

type jsonEntry struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Date      string `json:"date,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	AllDay    bool   `json:"all_day,omitempty"`
	Group     string `json:"group"`
	Repeat    string `json:"repeat,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

func ToJSON(src Source, path string) error {
	rows := src.rows()
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(rows),
		Items:      make([]jsonEntry, 0, len(rows)),
	}
	for _, r := range rows {
		export.Items = append(export.Items, jsonEntry{
			Kind:      r.Kind,
			Title:     r.Title,
			Date:      r.Date,
			Start:     r.Start,
			End:       r.End,
			AllDay:    r.AllDay,
			Group:     r.Group,
			Repeat:    r.Repeat,
			Completed: r.Completed,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
