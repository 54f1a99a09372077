package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func ToCSV(src Source, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Kind", "Title", "Date", "Start", "End", "All Day", "Calendar/List", "Repeat", "Completed"}); err != nil {
		return err
	}

	for _, r := range src.rows() {
		record := []string{
			r.Kind,
			r.Title,
			r.Date,
			r.Start,
			r.End,
			strconv.FormatBool(r.AllDay),
			r.Group,
			r.Repeat,
			strconv.FormatBool(r.Completed),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
