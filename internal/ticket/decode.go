package ticket

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NotAvailable is reported in diagnostics for fields a scan did not carry.
const NotAvailable = "N/A"

type Kind int

const (
	KindValid Kind = iota
	KindUnparseable
	KindMissingFields
)

func (k Kind) String() string {
	switch k {
	case KindValid:
		return "valid"
	case KindUnparseable:
		return "unparseable"
	case KindMissingFields:
		return "missing_fields"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

const (
	FieldClubID   = "club_id"
	FieldEventID  = "event_id"
	FieldUserID   = "user_id"
	FieldFullName = "fullname"
	FieldIsUsed   = "is_used"
)

var payloadFields = []string{FieldClubID, FieldEventID, FieldUserID, FieldFullName, FieldIsUsed}

// ScanResult is the outcome of reading scanned text. Exactly one of the
// kinds applies; Payload is only complete for KindValid.
type ScanResult struct {
	Kind    Kind     `json:"kind"`
	Raw     string   `json:"raw"`
	Payload Payload  `json:"payload"`
	Missing []string `json:"missing,omitempty"`
}

func (r ScanResult) Valid() bool {
	return r.Kind == KindValid
}

// Decode never fails: text that is not a JSON object is kept verbatim as
// an opaque identifier and absent fields are listed in Missing.
func Decode(raw string) ScanResult {
	var fields map[string]json.RawMessage

	trimmed := bytes.TrimSpace([]byte(raw))
	if err := json.Unmarshal(trimmed, &fields); err != nil || fields == nil {
		return ScanResult{Kind: KindUnparseable, Raw: raw}
	}

	res := ScanResult{Raw: raw}

	for _, name := range payloadFields {
		value, ok := fields[name]
		if !ok {
			res.Missing = append(res.Missing, name)
			continue
		}

		if name == FieldIsUsed {
			var used bool
			if err := json.Unmarshal(value, &used); err != nil {
				res.Missing = append(res.Missing, name)
				continue
			}
			res.Payload.IsUsed = used
			continue
		}

		s, ok := textValue(value)
		if !ok {
			res.Missing = append(res.Missing, name)
			continue
		}

		switch name {
		case FieldClubID:
			res.Payload.ClubID = s
		case FieldEventID:
			res.Payload.EventID = s
		case FieldUserID:
			res.Payload.UserID = s
		case FieldFullName:
			res.Payload.FullName = s
		}
	}

	if len(res.Missing) > 0 {
		res.Kind = KindMissingFields
	}

	return res
}

// textValue accepts strings and numbers; ids minted by other tools are
// sometimes numeric.
func textValue(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String(), n != ""
	}

	return "", false
}

// Diagnostics flattens the result into the lenient view shown to
// operators, with NotAvailable for anything the scan did not carry.
func (r ScanResult) Diagnostics() map[string]string {
	out := map[string]string{
		FieldClubID:   NotAvailable,
		FieldEventID:  NotAvailable,
		FieldUserID:   NotAvailable,
		FieldFullName: NotAvailable,
		FieldIsUsed:   NotAvailable,
	}

	if r.Kind == KindUnparseable {
		return out
	}

	missing := make(map[string]struct{}, len(r.Missing))
	for _, m := range r.Missing {
		missing[m] = struct{}{}
	}

	set := func(name, value string) {
		if _, gone := missing[name]; !gone {
			out[name] = value
		}
	}

	set(FieldClubID, r.Payload.ClubID)
	set(FieldEventID, r.Payload.EventID)
	set(FieldUserID, r.Payload.UserID)
	set(FieldFullName, r.Payload.FullName)
	set(FieldIsUsed, strconv.FormatBool(r.Payload.IsUsed))

	return out
}
