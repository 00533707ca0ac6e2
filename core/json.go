// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// textFields returns the string fields of a listing keyed by their JSON name.
func (l *Listing) textFields() map[string]*string {
	return map[string]*string{
		"sell_number":     &l.SellNumber,
		"title":           &l.Title,
		"subtitle":        &l.Subtitle,
		"car_number":      &l.CarNumber,
		"fuel":            &l.Fuel,
		"auction_name":    &l.AuctionName,
		"region":          &l.Region,
		"auction_date":    &l.AuctionDate,
		"vehicleType":     &l.VehicleType,
		"usage":           &l.Usage,
		"type":            &l.Type,
		"purpose":         &l.Purpose,
		"manufacturer_id": &l.ManufacturerID,
		"model_id":        &l.ModelID,
		"trim_id":         &l.TrimID,
	}
}

func (l *Listing) numericFields() map[string]*Numeric {
	return map[string]*Numeric{
		"price": &l.Price,
		"year":  &l.Year,
		"km":    &l.Km,
	}
}

// UnmarshalJSON decodes a listing row leniently. Text fields accept strings,
// numbers, booleans and null; unknown fields land in Extra. An object or array
// where a text field belongs leaves the field blank and is kept in Extra.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListing, err)
	}

	*l = Listing{}
	texts := l.textFields()
	numerics := l.numericFields()

	for key, value := range raw {
		if dst, ok := texts[key]; ok && isScalar(value) {
			s, err := decodeText(value)
			if err != nil {
				return fmt.Errorf("%w: field %q: %w", ErrInvalidListing, key, err)
			}
			*dst = s
			continue
		}
		if dst, ok := numerics[key]; ok {
			if err := dst.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("%w: field %q: %w", ErrInvalidListing, key, err)
			}
			continue
		}

		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrInvalidListing, key, err)
		}
		if l.Extra == nil {
			l.Extra = make(map[string]any)
		}
		l.Extra[key] = v
	}
	return nil
}

// MarshalJSON writes known fields plus everything held in Extra.
func (l Listing) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Extra)+16)
	for k, v := range l.Extra {
		out[k] = v
	}
	for key, src := range l.textFields() {
		if *src != "" || key == "title" {
			out[key] = *src
		}
	}
	for key, src := range l.numericFields() {
		out[key] = *src
	}
	return json.Marshal(out)
}

func isScalar(value json.RawMessage) bool {
	value = bytes.TrimSpace(value)
	return len(value) == 0 || (value[0] != '{' && value[0] != '[')
}

func decodeText(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return "", nil
	}
	switch value[0] {
	case '"':
		var s string
		err := json.Unmarshal(value, &s)
		return s, err
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		var n json.Number
		if err := json.Unmarshal(value, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// UnmarshalJSON accepts both "label" and the legacy "model" key.
func (m *Model) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Model string `json:"model"`
		Trims []Trim `json:"trims"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.ID = aux.ID
	m.Label = aux.Label
	if m.Label == "" {
		m.Label = aux.Model
	}
	m.Trims = aux.Trims
	return nil
}

// UnmarshalJSON accepts both "label" and the legacy "trim" key.
func (t *Trim) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Trim  string `json:"trim"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = aux.ID
	t.Label = aux.Label
	if t.Label == "" {
		t.Label = aux.Trim
	}
	return nil
}

// DecodeListings parses a JSON array of listing rows.
// Wrapper objects of the form {"items": [...]} are accepted as well.
func DecodeListings(data []byte) ([]Listing, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapper struct {
			Items []Listing `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, err
		}
		return wrapper.Items, nil
	}
	var rows []Listing
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
