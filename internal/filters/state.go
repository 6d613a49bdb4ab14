// Package filters holds the job-list filter state, its query-string form and
// the controller that refetches the list whenever the state changes.
package filters

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Key names a filter as it appears in the query string and in chips.
type Key string

const (
	KeyCountry      Key = "country"
	KeyPage         Key = "page"
	KeyTimeframe    Key = "timeframe"
	KeyContractType Key = "contractType"
	KeyContractTime Key = "contractTime"
	KeyWorkLocation Key = "workLocation"
	KeyTitle        Key = "title"
	KeyLocation     Key = "location"
	KeyCompany      Key = "company"
	KeySkills       Key = "skills"
	KeyLanguages    Key = "languages"
	KeyFavorites    Key = "favorites"
)

// Keys lists the removable filters in display order.
var Keys = []Key{
	KeyTimeframe,
	KeyCountry,
	KeyTitle,
	KeyCompany,
	KeyLocation,
	KeyContractType,
	KeyContractTime,
	KeyWorkLocation,
	KeySkills,
	KeyLanguages,
	KeyFavorites,
}

// State is the complete set of list filters. Empty strings and empty slices
// mean "unset".
type State struct {
	CountryCode      string
	Page             int
	TimeframeInWeeks int
	ContractType     string
	ContractTime     string
	WorkLocation     string
	Title            string
	Location         string
	Company          string
	Skills           []string
	Languages        []string
	OnlyFavorites    bool
}

func Default() State {
	return State{Page: 1, TimeframeInWeeks: 1}
}

func (s State) Clone() State {
	out := s
	out.Skills = slices.Clone(s.Skills)
	out.Languages = slices.Clone(s.Languages)
	return out
}

// Equal compares two states. Skills and languages compare as sets.
func (s State) Equal(o State) bool {
	return s.CountryCode == o.CountryCode &&
		s.Page == o.Page &&
		s.TimeframeInWeeks == o.TimeframeInWeeks &&
		s.ContractType == o.ContractType &&
		s.ContractTime == o.ContractTime &&
		s.WorkLocation == o.WorkLocation &&
		s.Title == o.Title &&
		s.Location == o.Location &&
		s.Company == o.Company &&
		s.OnlyFavorites == o.OnlyFavorites &&
		sameSet(s.Skills, o.Skills) &&
		sameSet(s.Languages, o.Languages)
}

// SameScope reports whether country and timeframe match, the inputs of the
// country-scoped option lists.
func (s State) SameScope(o State) bool {
	return s.CountryCode == o.CountryCode && s.TimeframeInWeeks == o.TimeframeInWeeks
}

// WithoutPage drops pagination, leaving the parameters of an export.
func (s State) WithoutPage() State {
	out := s.Clone()
	out.Page = 0
	return out
}

func (s State) normalize() State {
	out := s.Clone()
	out.CountryCode = strings.ToUpper(strings.TrimSpace(out.CountryCode))
	out.ContractType = strings.TrimSpace(out.ContractType)
	out.ContractTime = strings.TrimSpace(out.ContractTime)
	out.WorkLocation = strings.TrimSpace(out.WorkLocation)
	out.Title = strings.TrimSpace(out.Title)
	out.Location = strings.TrimSpace(out.Location)
	out.Company = strings.TrimSpace(out.Company)
	out.Skills = uniq(out.Skills)
	out.Languages = uniq(out.Languages)
	if out.Page < 1 {
		out.Page = 1
	}
	if out.TimeframeInWeeks < 1 {
		out.TimeframeInWeeks = 1
	}
	return out
}

// Encode writes only the fields that differ from Default.
func Encode(s State) url.Values {
	s = s.normalize()
	values := url.Values{}
	if s.CountryCode != "" {
		values.Set(string(KeyCountry), s.CountryCode)
	}
	if s.Page > 1 {
		values.Set(string(KeyPage), strconv.Itoa(s.Page))
	}
	if s.TimeframeInWeeks != 1 {
		values.Set(string(KeyTimeframe), strconv.Itoa(s.TimeframeInWeeks))
	}
	setIf(values, KeyContractType, s.ContractType)
	setIf(values, KeyContractTime, s.ContractTime)
	setIf(values, KeyWorkLocation, s.WorkLocation)
	setIf(values, KeyTitle, s.Title)
	setIf(values, KeyLocation, s.Location)
	setIf(values, KeyCompany, s.Company)
	if len(s.Skills) > 0 {
		values.Set(string(KeySkills), strings.Join(s.Skills, ","))
	}
	if len(s.Languages) > 0 {
		values.Set(string(KeyLanguages), strings.Join(s.Languages, ","))
	}
	if s.OnlyFavorites {
		values.Set(string(KeyFavorites), "true")
	}
	return values
}

// Parse builds a State from query values. Missing or invalid numbers fall
// back to their defaults.
func Parse(values url.Values) State {
	s := Default()
	s.CountryCode = values.Get(string(KeyCountry))
	s.Page = positiveInt(values.Get(string(KeyPage)), 1)
	s.TimeframeInWeeks = positiveInt(values.Get(string(KeyTimeframe)), 1)
	s.ContractType = values.Get(string(KeyContractType))
	s.ContractTime = values.Get(string(KeyContractTime))
	s.WorkLocation = values.Get(string(KeyWorkLocation))
	s.Title = values.Get(string(KeyTitle))
	s.Location = values.Get(string(KeyLocation))
	s.Company = values.Get(string(KeyCompany))
	s.Skills = splitList(values.Get(string(KeySkills)))
	s.Languages = splitList(values.Get(string(KeyLanguages)))
	s.OnlyFavorites = values.Get(string(KeyFavorites)) == "true"
	return s.normalize()
}

// ParseQuery accepts a raw query string, with or without a leading "?".
func ParseQuery(raw string) (State, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil {
		return Default(), err
	}
	return Parse(values), nil
}

// Query is Encode in string form.
func (s State) Query() string {
	return Encode(s).Encode()
}

func setIf(values url.Values, key Key, value string) {
	if value != "" {
		values.Set(string(key), value)
	}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return uniq(strings.Split(raw, ","))
}

func uniq(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || slices.Contains(out, item) {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, item := range a {
		if !slices.Contains(b, item) {
			return false
		}
	}
	return true
}
