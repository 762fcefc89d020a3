package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// DRAFT es el único estado no terminal: la guarda de idempotencia de la
// validación y de la cancelación se apoya en esto.
func TestStockMove_IsTerminal(t *testing.T) {
	cases := []struct {
		status   string
		terminal bool
	}{
		{entity.MoveStatusDraft, false},
		{entity.MoveStatusValidated, true},
		{entity.MoveStatusCancelled, true},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			m := &entity.StockMove{Status: tc.status}
			assert.Equal(t, tc.terminal, m.IsTerminal())
		})
	}
}
