package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteStatusLifecycle(t *testing.T) {
	assert.True(t, QuoteStatusSaved.CanBeBooked())
	assert.True(t, QuoteStatusCallbackRequested.CanBeBooked())
	assert.False(t, QuoteStatusBooked.CanBeBooked())

	assert.True(t, QuoteStatusSaved.CanRequestCallback())
	assert.False(t, QuoteStatusCallbackRequested.CanRequestCallback())
	assert.False(t, QuoteStatusBooked.CanRequestCallback())
}

func TestQuoteStatusIsValid(t *testing.T) {
	for _, status := range []QuoteStatus{QuoteStatusSaved, QuoteStatusCallbackRequested, QuoteStatusBooked} {
		assert.True(t, status.IsValid())
	}
	assert.False(t, QuoteStatus("pending").IsValid())
}
