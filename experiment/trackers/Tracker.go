// Package trackers implements Trackers, which track and save data
// generated by Monte Carlo runs
package trackers

import (
	"encoding/gob"
	"log"
	"os"

	"github.com/samuelfneumann/gomonte/timestep"
)

// Interface Tracker keeps track of per-episode data and saves the
// data after a run has finished
type Tracker interface {
	Track(ep timestep.Episode)
	Save()
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) []float64 {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	// Decode the saved data
	var data []float64
	de := gob.NewDecoder(file)
	if err = de.Decode(&data); err != nil {
		log.Fatalf("could not decode data file: %v", err)
	}

	return data
}
