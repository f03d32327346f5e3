package ledger

import "wisewallet/backend/models"

// TransactionJournal is an append-only list of spending and contribution events.
// Entries are stored oldest-first so Append is amortized O(1); reads return newest-first.
type TransactionJournal struct {
	entries []models.Transaction
}

func NewTransactionJournal() *TransactionJournal {
	return &TransactionJournal{}
}

// Append records an entry. Entries are never modified afterwards.
func (j *TransactionJournal) Append(entry models.Transaction) {
	j.entries = append(j.entries, entry)
}

// All returns a copy of every entry, most recent first.
func (j *TransactionJournal) All() []models.Transaction {
	return j.Recent(len(j.entries))
}

// Recent returns up to n entries, most recent first.
func (j *TransactionJournal) Recent(n int) []models.Transaction {
	if n > len(j.entries) {
		n = len(j.entries)
	}
	if n <= 0 {
		return []models.Transaction{}
	}
	out := make([]models.Transaction, 0, n)
	for i := len(j.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.entries[i])
	}
	return out
}

func (j *TransactionJournal) Len() int {
	return len(j.entries)
}

// Clear empties the journal.
func (j *TransactionJournal) Clear() {
	j.entries = nil
}
