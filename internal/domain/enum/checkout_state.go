package enum

import "encoding/json"

// CheckoutState represents where a session is in the payment flow.
// Idle: payment panel closed. Reviewing: panel open, operator editing
// discount/override/paid amount. Submitting: billing request in flight.
// Succeeded/Failed: terminal outcomes of the last attempt; Failed returns
// the session to Reviewing so the operator can retry.
type CheckoutState int

const (
	CheckoutIdle       CheckoutState = 0
	CheckoutReviewing  CheckoutState = 1
	CheckoutSubmitting CheckoutState = 2
	CheckoutSucceeded  CheckoutState = 3
	CheckoutFailed     CheckoutState = 4
)

func (s CheckoutState) String() string {
	names := [...]string{"Idle", "Reviewing", "Submitting", "Succeeded", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CheckoutState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CheckoutState(i)
		return nil
	}
	switch str {
	case "Idle":
		*s = CheckoutIdle
	case "Reviewing":
		*s = CheckoutReviewing
	case "Submitting":
		*s = CheckoutSubmitting
	case "Succeeded":
		*s = CheckoutSucceeded
	case "Failed":
		*s = CheckoutFailed
	}
	return nil
}
