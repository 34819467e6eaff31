package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/san-kum/gliderlab/internal/geom"
)

// TrajectoryToCSV writes a trajectory to path with an x,y header, the
// same layout the run store uses.
func TrajectoryToCSV(path string, traj []geom.Vec2) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range traj {
		row := []string{
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
