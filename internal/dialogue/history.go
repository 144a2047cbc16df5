package dialogue

// EntryKind distinguishes spoken messages from rendered tool tables.
type EntryKind int

const (
	EntryMessage EntryKind = iota
	EntryToolOutput
)

// Entry is one item of the chronological transcript. Tool output carries no
// speaker; its Text is the rendered table.
type Entry struct {
	Kind    EntryKind
	Speaker string
	Text    string
}

// HistoryLog is the append-only transcript of a session. Entries are never
// edited or removed; insertion order is the rendering and persistence order.
type HistoryLog struct {
	entries []Entry
}

func NewHistory() *HistoryLog {
	return &HistoryLog{}
}

func (h *HistoryLog) AppendMessage(speaker, text string) Entry {
	e := Entry{Kind: EntryMessage, Speaker: speaker, Text: text}
	h.entries = append(h.entries, e)
	return e
}

func (h *HistoryLog) AppendToolOutput(rendered string) Entry {
	e := Entry{Kind: EntryToolOutput, Text: rendered}
	h.entries = append(h.entries, e)
	return e
}

// Entries returns a copy of the transcript; callers cannot mutate history.
func (h *HistoryLog) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

func (h *HistoryLog) Len() int {
	return len(h.entries)
}
