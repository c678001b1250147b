package enum

import "encoding/json"

// DiscountType represents how an order-level discount is applied
type DiscountType int

const (
	DiscountTypePercent DiscountType = 0
	DiscountTypeFixed   DiscountType = 1
)

func (d DiscountType) String() string {
	names := [...]string{"percent", "fixed"}
	if int(d) < 0 || int(d) >= len(names) {
		return "percent"
	}
	return names[d]
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountType(i)
		return nil
	}
	switch str {
	case "percent":
		*d = DiscountTypePercent
	case "fixed":
		*d = DiscountTypeFixed
	}
	return nil
}
