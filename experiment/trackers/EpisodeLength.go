package trackers

import (
	"encoding/gob"
	"log"
	"os"

	"github.com/samuelfneumann/gomonte/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in a run,
// measured as the number of transitions taken.
type EpisodeLength struct {
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) Tracker {
	var saver EpisodeLength
	saver.filename = filename
	return &saver
}

// Track caches the length of a completed episode
func (e *EpisodeLength) Track(ep timestep.Episode) {
	e.episodeLengths = append(e.episodeLengths, float64(len(ep)-1))
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() {
	// Open the file to save to
	file, err := os.Create(e.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(e.episodeLengths); err != nil {
		log.Fatalf("could not encode episode length data: %v", err)
	}
}
