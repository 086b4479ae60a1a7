package domain

// Dataset is an immutable ordered collection of tickets. It is built once at
// startup and only read afterwards.
type Dataset struct {
	tickets []Ticket
}

// NewDataset copies the given tickets into a new Dataset.
func NewDataset(tickets []Ticket) *Dataset {
	owned := make([]Ticket, len(tickets))
	copy(owned, tickets)
	return &Dataset{tickets: owned}
}

// EmptyDataset returns a dataset with no records.
func EmptyDataset() *Dataset {
	return &Dataset{}
}

// Concat joins datasets in the given order.
func Concat(parts ...*Dataset) *Dataset {
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	out := make([]Ticket, 0, total)
	for _, p := range parts {
		if p == nil {
			continue
		}
		out = append(out, p.tickets...)
	}
	return &Dataset{tickets: out}
}

// Len returns the number of records. A nil dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.tickets)
}

// At returns the record at position i. Callers must not modify it.
func (d *Dataset) At(i int) *Ticket {
	return &d.tickets[i]
}
