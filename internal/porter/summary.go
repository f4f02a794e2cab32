package porter

import "fmt"

// Outcome is the result of processing one track.
type Outcome int

const (
	Skipped Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Summary counts the outcomes of one playlist conversion.
// Succeeded+Skipped+Failed equals the number of available tracks processed.
type Summary struct {
	Playlist  string
	Dir       string
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
}

func (s *Summary) record(o Outcome) {
	switch o {
	case Skipped:
		s.Skipped++
	case Succeeded:
		s.Succeeded++
	case Failed:
		s.Failed++
	}
}

// Processed is the number of tracks that reached a final outcome.
func (s Summary) Processed() int {
	return s.Succeeded + s.Skipped + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d successful, %d skipped, %d failed", s.Succeeded, s.Skipped, s.Failed)
}
