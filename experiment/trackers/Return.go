package trackers

import (
	"encoding/gob"
	"log"
	"os"

	"github.com/samuelfneumann/gomonte/timestep"
)

// Return tracks and saves the episodic return of each episode in a
// run. The return is the episode's total undiscounted reward,
// excluding the first step's placeholder.
//
// Note: only completed episodes reach a Tracker. Episodes that exceed
// the safety step bound are discarded by the run and never tracked.
type Return struct {
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which will save
// its data at the specified location filename
func NewReturn(filename string) Tracker {
	var saver Return
	saver.filename = filename
	return &saver
}

// Track caches the return of a completed episode
func (r *Return) Track(ep timestep.Episode) {
	r.episodeReturns = append(r.episodeReturns, ep.Return())
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() {
	// Open the file to save to
	file, err := os.Create(r.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(r.episodeReturns); err != nil {
		log.Fatalf("could not encode return data: %v", err)
	}
}
