package structs

// NoLogsNotice is shown in place of table rows when the log file is absent.
const NoLogsNotice = "There are no logs yet."

// Page is everything a renderer needs to display one read of the log file.
type Page struct {
	Path    string
	Exists  bool
	Total   int
	Skipped int
	Entries []LogEntry
}

// Rows projects the entries in file order.
func (p *Page) Rows() []Row {
	rows := make([]Row, 0, len(p.Entries))
	for _, entry := range p.Entries {
		rows = append(rows, entry.Row())
	}
	return rows
}
