package quote

type QuoteStatus string

const (
	QuoteStatusSaved             QuoteStatus = "saved"
	QuoteStatusCallbackRequested QuoteStatus = "callback_requested"
	QuoteStatusBooked            QuoteStatus = "booked"
)

func (qs QuoteStatus) String() string {
	return string(qs)
}

func (qs QuoteStatus) IsValid() bool {
	switch qs {
	case QuoteStatusSaved, QuoteStatusCallbackRequested, QuoteStatusBooked:
		return true
	default:
		return false
	}
}

// CanBeBooked returns true while the quote has not been converted to a shipment yet.
func (qs QuoteStatus) CanBeBooked() bool {
	return qs == QuoteStatusSaved || qs == QuoteStatusCallbackRequested
}

// CanRequestCallback returns true if a callback may still be requested for the quote.
func (qs QuoteStatus) CanRequestCallback() bool {
	return qs == QuoteStatusSaved
}
