package render

// Tone hints how a cell should be emphasized.
type Tone int

// Tones.
const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

// Row is one display row, already formatted.
type Row struct {
	Cells []string
	Tone  Tone
}

// Table is an ordered list of formatted rows under a header.
type Table struct {
	Headers []string
	Rows    []Row
}

// Stat is a labelled summary value.
type Stat struct {
	Label string
	Value string
}
