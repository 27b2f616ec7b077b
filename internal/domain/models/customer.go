package models

// Gender of the customer as collected by the form.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Country is the customer's geography. Each known value expands to one
// indicator feature.
type Country string

const (
	CountryFrance  Country = "France"
	CountryGermany Country = "Germany"
	CountrySpain   Country = "Spain"
)

// Countries lists the known geographies in display order.
var Countries = []Country{CountryFrance, CountryGermany, CountrySpain}

// Known reports whether c is one of Countries.
func (c Country) Known() bool {
	for _, k := range Countries {
		if k == c {
			return true
		}
	}
	return false
}

// CustomerRecord holds the raw attributes of a single customer to score.
// It is bound from the dashboard form, the JSON API and websocket messages.
// The `default` tags only seed the empty dashboard form; submitted records
// are validated as sent.
type CustomerRecord struct {
	Age             int     `json:"age" form:"age" default:"40" validate:"gte=18,lte=100"`
	Gender          Gender  `json:"gender" form:"gender" default:"Male" validate:"required,oneof=Male Female"`
	Country         Country `json:"country" form:"country" default:"France" validate:"required,oneof=France Germany Spain"`
	CreditScore     int     `json:"credit_score" form:"credit_score" default:"650" validate:"gte=300,lte=900"`
	Balance         float64 `json:"balance" form:"balance" validate:"finite,gte=0"`
	Tenure          int     `json:"tenure" form:"tenure" validate:"gte=0,lte=10"`
	NumOfProducts   int     `json:"num_of_products" form:"num_of_products" default:"1" validate:"gte=1,lte=4"`
	HasCreditCard   bool    `json:"has_credit_card" form:"has_credit_card"`
	IsActiveMember  bool    `json:"is_active_member" form:"is_active_member"`
	EstimatedSalary float64 `json:"estimated_salary" form:"estimated_salary" validate:"finite,gte=0"`
}
