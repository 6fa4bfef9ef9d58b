package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/heatsim/internal/storage"
)

type Data struct {
	Run          storage.RunMetadata `json:"run"`
	Samples      int                 `json:"samples"`
	Times        []float64           `json:"times"`
	Energies     []float64           `json:"energies"`
	Temperatures [][]float64         `json:"temperatures"`
}

// JSON writes a stored run and its sampled history as indented JSON.
func JSON(w io.Writer, meta storage.RunMetadata, series *storage.Series) error {
	data := Data{
		Run:          meta,
		Samples:      len(series.Times),
		Times:        series.Times,
		Energies:     series.Energies,
		Temperatures: series.Temperatures,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func JSONFile(path string, meta storage.RunMetadata, series *storage.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return JSON(file, meta, series)
}
