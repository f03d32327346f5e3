package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wisewallet/backend/apperr"
	"wisewallet/backend/models"
)

func TestTransactionJournal(t *testing.T) {
	j := NewTransactionJournal()
	assert.Empty(t, j.All())

	for _, name := range []string{"Amazon", "World Gym", "SAQ"} {
		j.Append(models.Transaction{Name: name})
	}

	all := j.All()
	assert.Equal(t, 3, j.Len())
	assert.Equal(t, "SAQ", all[0].Name)
	assert.Equal(t, "Amazon", all[2].Name)

	recent := j.Recent(2)
	assert.Len(t, recent, 2)
	assert.Equal(t, "World Gym", recent[1].Name)
	assert.Len(t, j.Recent(10), 3)
	assert.Empty(t, j.Recent(0))

	// callers get copies
	all[0].Name = "mutated"
	assert.Equal(t, "SAQ", j.All()[0].Name)

	j.Clear()
	assert.Equal(t, 0, j.Len())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantMsg string
	}{
		{"560", 560, ""},
		{" 4.50 ", 4.5, ""},
		{"", 0, MsgFillAllFields},
		{"abc", 0, MsgInvalidAmount},
		{"12abc", 0, MsgInvalidAmount},
		{"0", 0, MsgInvalidAmount},
		{"-3", 0, MsgInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperr.MessageOf(err, ""))
		})
	}
}
