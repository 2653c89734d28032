package validators

import (
	"sort"
	"strings"
)

// Violations maps a field name to the reason it was rejected.
type Violations map[string]string

func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid admission: " + strings.Join(parts, "; ")
}

// ValidateAdmission checks the join/walk-in form before it reaches the
// queue engine. All four fields are required.
func ValidateAdmission(customerName, phone string, barberID, serviceID int) error {
	v := Violations{}

	if strings.TrimSpace(customerName) == "" {
		v["customer_name"] = "required"
	}
	if strings.TrimSpace(phone) == "" {
		v["phone"] = "required"
	}
	if barberID <= 0 {
		v["barber_id"] = "required"
	}
	if serviceID <= 0 {
		v["service_id"] = "required"
	}

	if len(v) == 0 {
		return nil
	}
	return v
}
