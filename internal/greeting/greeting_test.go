package greeting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/targihasta/fair-lottery/internal/model"
)

func TestForWinner(t *testing.T) {
	winner := model.Order{ClientName: "ACME", CreatedBy: "Stoisko A"}
	for i := 0; i < 50; i++ {
		msg := ForWinner(winner)
		assert.Contains(t, msg, "ACME")
		assert.Contains(t, msg, "Stoisko A")
		assert.NotContains(t, msg, "{client}")
		assert.NotContains(t, msg, "{exhibitor}")
	}
}

func TestFallbackExhibitor(t *testing.T) {
	winner := model.Order{ClientName: "ACME"}
	msg := ForWinner(winner)
	assert.Contains(t, msg, "Dostawca")
}

func TestAllTemplatesCarryBothPlaceholders(t *testing.T) {
	for _, tpl := range templates {
		assert.True(t, strings.Contains(tpl, "{client}"), "template missing {client}: %s", tpl)
		assert.True(t, strings.Contains(tpl, "{exhibitor}"), "template missing {exhibitor}: %s", tpl)
	}
}
