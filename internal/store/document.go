package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"dawai/m/internal/dates"
)

// document is a decoded invoice body. Only the handful of fields used for
// filtering are ever read from it; the stored bytes are never rebuilt from it.
type document map[string]any

var errNotObject = errors.New("invoice body must be a JSON object")

func decodeDocument(body []byte) (document, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errNotObject
	}
	if dec.More() {
		return nil, errors.New("trailing data after invoice body")
	}
	return doc, nil
}

// text returns a scalar field as a string, or "" when absent or structured.
func (d document) text(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

type patient struct {
	Name   string
	Mobile string
}

// patient reads the first entry of the billPharmacy list, falling back to the
// top-level patientName and mobile fields.
func (d document) patient() patient {
	var first document
	if list, ok := d["billPharmacy"].([]any); ok && len(list) > 0 {
		if m, ok := list[0].(map[string]any); ok {
			first = document(m)
		}
	}
	return patient{
		Name:   firstNonEmpty(first.text("patientname"), first.text("patientName"), d.text("patientName")),
		Mobile: firstNonEmpty(first.text("phoneNumber"), first.text("mobile"), d.text("mobile")),
	}
}

// date returns the invoice date as DD-MM-YYYY. Records without a date field are
// dated by their creation time.
func (d document) date(createdAt int64, loc *time.Location) string {
	if v := firstNonEmpty(d.text("date"), d.text("invoiceDate")); v != "" {
		return dates.Normalize(v)
	}
	return dates.Format(time.UnixMilli(createdAt).In(loc))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
