package enum

import "encoding/json"

// BillingStatus represents the status reported on a billing submission
type BillingStatus int

const (
	BillingStatusPending   BillingStatus = 0
	BillingStatusCompleted BillingStatus = 1
	BillingStatusFailed    BillingStatus = 2
)

func (s BillingStatus) String() string {
	names := [...]string{"Pending", "Completed", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

func (s BillingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillingStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = BillingStatusPending
	case "Completed":
		*s = BillingStatusCompleted
	case "Failed":
		*s = BillingStatusFailed
	}
	return nil
}
