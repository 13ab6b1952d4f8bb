package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefundFor(t *testing.T) {
	p := &CancellationPolicy{HoursBeforeEvent: 24, RefundPercentage: 80}

	assert.Equal(t, 80, p.RefundFor(48), "well ahead of the deadline")
	assert.Equal(t, 80, p.RefundFor(24), "exactly at the deadline")
	assert.Equal(t, 0, p.RefundFor(23.5), "inside the deadline")
	assert.Equal(t, 0, p.RefundFor(0))
}
