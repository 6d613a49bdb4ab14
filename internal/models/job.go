package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// JobPosting is a read-only posting as returned by the backend.
type JobPosting struct {
	ID              int64     `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	CompanyName     string    `json:"companyName" yaml:"company_name"`
	CompanyURL      string    `json:"companyUrl,omitempty" yaml:"company_url,omitempty"`
	LocationName    string    `json:"locationName" yaml:"location_name"`
	ContractType    string    `json:"contractType" yaml:"contract_type"`
	ContractTime    string    `json:"contractTime" yaml:"contract_time"`
	WorkplaceModel  string    `json:"workplaceModel" yaml:"workplace_model"`
	CountryCode     string    `json:"countryCode" yaml:"country_code"`
	CountryName     string    `json:"countryName,omitempty" yaml:"country_name,omitempty"`
	SalaryMin       *float64  `json:"salaryMin,omitempty" yaml:"salary_min,omitempty"`
	SalaryMax       *float64  `json:"salaryMax,omitempty" yaml:"salary_max,omitempty"`
	Description     string    `json:"description" yaml:"description"`
	FullDescription string    `json:"fullDescription,omitempty" yaml:"full_description,omitempty"`
	Created         Timestamp `json:"created" yaml:"created"`
	URL             string    `json:"url" yaml:"url"`
	Skills          []string  `json:"skills" yaml:"skills"`
	Languages       []string  `json:"languages" yaml:"languages"`
}

// DisplayDescription prefers the full description when the backend has one.
func (j JobPosting) DisplayDescription() string {
	if strings.TrimSpace(j.FullDescription) != "" {
		return j.FullDescription
	}
	return j.Description
}

// Timestamp accepts the handful of layouts the backend emits, including
// local times without a zone offset.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		t.Time = time.Time{}
		return nil
	}
	ts, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = ts
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(time.RFC3339), nil
}

// FlexFloat decodes a number that may arrive as a JSON number or a numeric string.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*f = FlexFloat{}
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", raw, err)
	}
	*f = FlexFloat{Value: value, Valid: true}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
