package features

import (
	"sort"
	"strings"

	"ChurnScope/internal/domain/models"
)

// CountryPrefix marks one-hot country indicator features, e.g. "Geo_Spain".
const CountryPrefix = "Geo_"

type accessor func(r models.CustomerRecord) float64

// valueTable is the complete set of non-indicator feature names the encoder
// understands.
var valueTable = map[string]accessor{
	"CreditScore":     func(r models.CustomerRecord) float64 { return float64(r.CreditScore) },
	"Gender":          func(r models.CustomerRecord) float64 { return boolFloat(r.Gender == models.GenderFemale) },
	"Age":             func(r models.CustomerRecord) float64 { return float64(r.Age) },
	"Tenure":          func(r models.CustomerRecord) float64 { return float64(r.Tenure) },
	"Balance":         func(r models.CustomerRecord) float64 { return r.Balance },
	"NumOfProducts":   func(r models.CustomerRecord) float64 { return float64(r.NumOfProducts) },
	"HasCrCard":       func(r models.CustomerRecord) float64 { return boolFloat(r.HasCreditCard) },
	"IsActiveMember":  func(r models.CustomerRecord) float64 { return boolFloat(r.IsActiveMember) },
	"EstimatedSalary": func(r models.CustomerRecord) float64 { return r.EstimatedSalary },
}

// Encoder is a feature-name list resolved against the encoder table. The
// only record it refuses is one whose country has no indicator column in
// a list that has indicator columns.
type Encoder struct {
	names     []string
	cols      []accessor
	countries map[models.Country]bool
}

// NewEncoder resolves every name up front and returns an
// *models.EncodingMismatchError for the first one it cannot map.
func NewEncoder(names []string) (*Encoder, error) {
	cols := make([]accessor, 0, len(names))
	countries := map[models.Country]bool{}
	for _, name := range names {
		acc, err := resolve(name)
		if err != nil {
			return nil, err
		}
		if suffix, ok := strings.CutPrefix(name, CountryPrefix); ok {
			countries[models.Country(suffix)] = true
		}
		cols = append(cols, acc)
	}
	return &Encoder{names: append([]string(nil), names...), cols: cols, countries: countries}, nil
}

// Encode builds the feature vector for r in the encoder's name order.
func (e *Encoder) Encode(r models.CustomerRecord) (models.FeatureVector, error) {
	if len(e.countries) > 0 && !e.countries[r.Country] {
		return nil, &models.EncodingMismatchError{Feature: CountryPrefix + string(r.Country)}
	}
	out := make(models.FeatureVector, len(e.cols))
	for i, col := range e.cols {
		out[i] = col(r)
	}
	return out, nil
}

// Names returns a copy of the feature-name order.
func (e *Encoder) Names() []string {
	return append([]string(nil), e.names...)
}

// Encode is the one-shot form of NewEncoder(names).Encode(r).
func Encode(r models.CustomerRecord, names []string) (models.FeatureVector, error) {
	enc, err := NewEncoder(names)
	if err != nil {
		return nil, err
	}
	return enc.Encode(r)
}

// KnownFeatures lists every name the encoder can map, sorted.
func KnownFeatures() []string {
	out := make([]string, 0, len(valueTable)+len(models.Countries))
	for name := range valueTable {
		out = append(out, name)
	}
	for _, c := range models.Countries {
		out = append(out, CountryPrefix+string(c))
	}
	sort.Strings(out)
	return out
}

func resolve(name string) (accessor, error) {
	if suffix, ok := strings.CutPrefix(name, CountryPrefix); ok {
		country := models.Country(suffix)
		if !country.Known() {
			return nil, &models.EncodingMismatchError{Feature: name}
		}
		return func(r models.CustomerRecord) float64 { return boolFloat(r.Country == country) }, nil
	}
	if acc, ok := valueTable[name]; ok {
		return acc, nil
	}
	return nil, &models.EncodingMismatchError{Feature: name}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
