package wizard

// MarkerStatus is a step's state in the progress indicator.
type MarkerStatus int

// Marker statuses.
const (
	MarkerUpcoming MarkerStatus = iota
	MarkerActive
	MarkerCompleted
)

// Marker is one entry of the progress indicator.
type Marker struct {
	Label  string
	Step   Step
	Status MarkerStatus
}

// Progress derives the progress indicator for the visible step: steps before
// it are completed, later ones upcoming.
func Progress(current Step) []Marker {
	markers := make([]Marker, 0, len(Steps))
	for _, s := range Steps {
		m := Marker{Step: s, Label: s.Label()}
		switch {
		case s == current:
			m.Status = MarkerActive
		case s < current:
			m.Status = MarkerCompleted
		}
		markers = append(markers, m)
	}
	return markers
}
