// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/samuelfneumann/gomonte/utils/floatutils"
)

// ProgressBar implements a concurrent progress bar. The bar redraws on
// a fixed interval in a separate goroutine so that it runs alongside
// whatever work is being measured.
type ProgressBar struct {
	// width determines the number of characters wide that the
	// progress bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress int

	incrementEvent chan int
	closeEvent     chan struct{}
	closed         bool

	updateEvery time.Duration
}

// New returns a new progress bar that is width characters wide and
// reaches 100% capacity after max Increment() calls.
func New(width, max int, updateEvery time.Duration) *ProgressBar {
	return &ProgressBar{
		width:          width,
		maxProgress:    max,
		incrementEvent: make(chan int),
		closeEvent:     make(chan struct{}),
		updateEvery:    updateEvery,
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	select {
	case p.incrementEvent <- 1:
	case <-p.closeEvent:
	}
}

// Close closes the progress bar so that it will no longer display to
// the screen. This function also cleans up any resources the progress
// bar is using.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	close(p.closeEvent)
	p.closed = true
	fmt.Println() // Jump to next line after printed bar
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (p *ProgressBar) Display() {
	go func() {
		progress := 0
		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		for {
			select {
			case n := <-p.incrementEvent:
				progress += n
				continue

			case <-tick.C:
				p.draw(progress)

			case <-p.closeEvent:
				p.draw(progress)
				return
			}
		}
	}()
}

// draw prints the bar at some progress level, overwriting the
// previously printed bar. A bar over zero work is already complete.
func (p *ProgressBar) draw(progress int) {
	fraction := 1.0
	if p.maxProgress > 0 {
		fraction = float64(progress) / float64(p.maxProgress)
	}
	fraction = floatutils.Clip(fraction, 0, 1)
	filled := int(fraction * float64(p.width))

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("=", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	bar.WriteString("|")

	fmt.Printf("\r%v %.0f%% (%d/%d)", bar.String(), fraction*100, progress,
		p.maxProgress)
}
