package speech

// EntryKind tells what a journal entry recorded
type EntryKind int

const (
	EntrySpoken EntryKind = iota
	EntryQueued
	EntryCue
)

// Entry is one recorded sink call
type Entry struct {
	Kind EntryKind
	Text string
}

// Journal records every sink call. It implements both Speaker and CuePlayer
// and is what the demo host renders and what tests assert against.
type Journal struct {
	entries []Entry
	limit   int
}

// NewJournal creates a journal keeping at most limit entries (0 = unbounded)
func NewJournal(limit int) *Journal {
	return &Journal{limit: limit}
}

func (j *Journal) record(e Entry) {
	j.entries = append(j.entries, e)
	if j.limit > 0 && len(j.entries) > j.limit {
		j.entries = append([]Entry(nil), j.entries[len(j.entries)-j.limit:]...)
	}
}

// Speak implements Speaker
func (j *Journal) Speak(text string) { j.record(Entry{Kind: EntrySpoken, Text: text}) }

// Queue implements Speaker
func (j *Journal) Queue(text string) { j.record(Entry{Kind: EntryQueued, Text: text}) }

// Play implements CuePlayer
func (j *Journal) Play(cue Cue) error {
	j.record(Entry{Kind: EntryCue, Text: string(cue)})
	return nil
}

// Entries returns a copy of all entries
func (j *Journal) Entries() []Entry {
	return append([]Entry(nil), j.entries...)
}

// Spoken returns the text of every Speak and Queue call in order
func (j *Journal) Spoken() []string {
	var out []string
	for _, e := range j.entries {
		if e.Kind != EntryCue {
			out = append(out, e.Text)
		}
	}
	return out
}

// Cues returns every played cue in order
func (j *Journal) Cues() []Cue {
	var out []Cue
	for _, e := range j.entries {
		if e.Kind == EntryCue {
			out = append(out, Cue(e.Text))
		}
	}
	return out
}

// CountCue returns how often cue was played
func (j *Journal) CountCue(cue Cue) int {
	n := 0
	for _, c := range j.Cues() {
		if c == cue {
			n++
		}
	}
	return n
}

// Last returns the most recent spoken text, or ""
func (j *Journal) Last() string {
	for i := len(j.entries) - 1; i >= 0; i-- {
		if j.entries[i].Kind != EntryCue {
			return j.entries[i].Text
		}
	}
	return ""
}

// Reset drops all entries
func (j *Journal) Reset() {
	j.entries = nil
}
