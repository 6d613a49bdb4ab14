package filters

import (
	"fmt"
	"slices"
	"strings"
)

// Mutation is a named change to State. Apply returns the next state; every
// mutation other than SetPage leaves the page at 1.
type Mutation func(State) State

func withFirstPage(fn func(*State)) Mutation {
	return func(s State) State {
		next := s.Clone()
		fn(&next)
		next.Page = 1
		return next.normalize()
	}
}

// SetCountry selects a country and drops the country-specific location and
// company filters.
func SetCountry(code string) Mutation {
	return withFirstPage(func(s *State) {
		s.CountryCode = code
		s.Location = ""
		s.Company = ""
	})
}

func SetPage(page int) Mutation {
	return func(s State) State {
		next := s.Clone()
		next.Page = page
		return next.normalize()
	}
}

func SetTimeframe(weeks int) Mutation {
	return withFirstPage(func(s *State) { s.TimeframeInWeeks = weeks })
}

func SetContractType(value string) Mutation {
	return withFirstPage(func(s *State) { s.ContractType = value })
}

func SetContractTime(value string) Mutation {
	return withFirstPage(func(s *State) { s.ContractTime = value })
}

func SetWorkLocation(value string) Mutation {
	return withFirstPage(func(s *State) { s.WorkLocation = value })
}

// SetTitle applies a submitted title search.
func SetTitle(value string) Mutation {
	return withFirstPage(func(s *State) { s.Title = value })
}

func SetLocation(value string) Mutation {
	return withFirstPage(func(s *State) { s.Location = value })
}

func SetCompany(value string) Mutation {
	return withFirstPage(func(s *State) { s.Company = value })
}

func SetOnlyFavorites(only bool) Mutation {
	return withFirstPage(func(s *State) { s.OnlyFavorites = only })
}

// ToggleContractType selects value, or clears the filter if value is
// already selected. The same holds for the other single-choice toggles.
func ToggleContractType(value string) Mutation {
	return withFirstPage(func(s *State) { s.ContractType = toggleOne(s.ContractType, value) })
}

func ToggleContractTime(value string) Mutation {
	return withFirstPage(func(s *State) { s.ContractTime = toggleOne(s.ContractTime, value) })
}

func ToggleWorkLocation(value string) Mutation {
	return withFirstPage(func(s *State) { s.WorkLocation = toggleOne(s.WorkLocation, value) })
}

// ToggleSkill adds the skill, or removes it when already present.
func ToggleSkill(skill string) Mutation {
	return withFirstPage(func(s *State) { s.Skills = toggleMember(s.Skills, skill) })
}

func ToggleLanguage(language string) Mutation {
	return withFirstPage(func(s *State) { s.Languages = toggleMember(s.Languages, language) })
}

// ClearFilter resets one filter to its default. Clearing the country also
// clears location and company.
func ClearFilter(key Key) (Mutation, error) {
	var fn func(*State)
	switch key {
	case KeyTimeframe:
		fn = func(s *State) { s.TimeframeInWeeks = 1 }
	case KeyCountry:
		fn = func(s *State) {
			s.CountryCode = ""
			s.Location = ""
			s.Company = ""
		}
	case KeyTitle:
		fn = func(s *State) { s.Title = "" }
	case KeyCompany:
		fn = func(s *State) { s.Company = "" }
	case KeyLocation:
		fn = func(s *State) { s.Location = "" }
	case KeyContractType:
		fn = func(s *State) { s.ContractType = "" }
	case KeyContractTime:
		fn = func(s *State) { s.ContractTime = "" }
	case KeyWorkLocation:
		fn = func(s *State) { s.WorkLocation = "" }
	case KeySkills:
		fn = func(s *State) { s.Skills = nil }
	case KeyLanguages:
		fn = func(s *State) { s.Languages = nil }
	case KeyFavorites:
		fn = func(s *State) { s.OnlyFavorites = false }
	default:
		return nil, fmt.Errorf("unknown filter %q", key)
	}
	return withFirstPage(fn), nil
}

// ClearAll returns to the default state.
func ClearAll() Mutation {
	return func(State) State {
		return Default()
	}
}

func toggleOne(current string, value string) string {
	if strings.TrimSpace(current) == strings.TrimSpace(value) {
		return ""
	}
	return value
}

func toggleMember(items []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return items
	}
	if i := slices.Index(items, value); i >= 0 {
		return slices.Delete(slices.Clone(items), i, i+1)
	}
	return append(slices.Clone(items), value)
}
