package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var jsonNull = []byte("null")

// Timestamp holds a backend date-time as received. Spring sends either an
// ISO string (with or without offset) or a [y,m,d,h,mi,s,nanos] array.
// Anything unparseable decodes to the zero Timestamp instead of failing.
type Timestamp struct {
	Raw string
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Raw = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			t.Raw = strings.TrimSpace(s)
		}
	case '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err == nil && len(parts) >= 3 {
			for len(parts) < 7 {
				parts = append(parts, 0)
			}
			tm := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.UTC)
			t.Raw = tm.Format("2006-01-02T15:04:05.999999999")
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		return jsonNull, nil
	}
	return json.Marshal(t.Raw)
}

// IsZero reports whether no usable value was received.
func (t Timestamp) IsZero() bool {
	_, ok := t.In(time.UTC)
	return !ok
}

// In parses the timestamp. Offset-less values are read as wall time in loc;
// values carrying an offset are converted to loc.
func (t Timestamp) In(loc *time.Location) (time.Time, bool) {
	if t.Raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if tm, err := time.Parse(layout, t.Raw); err == nil {
			return tm.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if tm, err := time.ParseInLocation(layout, t.Raw, loc); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}

// FlexID decodes numeric identifiers sent as a number or a numeric string.
type FlexID int64

func (id *FlexID) UnmarshalJSON(data []byte) error {
	*id = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}
	raw := string(bytes.Trim(data, `"`))
	if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		*id = FlexID(n)
		return nil
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		*id = FlexID(int64(f))
	}
	return nil
}

func (id FlexID) String() string { return strconv.FormatInt(int64(id), 10) }

// StatusCode is a backend status code sent as either 1 or "1".
type StatusCode string

func (c *StatusCode) UnmarshalJSON(data []byte) error {
	*c = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*c = StatusCode(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*c = StatusCode(n.String())
	}
	return nil
}

// Number is a lenient numeric field; strings holding numbers are accepted,
// anything else reads as zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	raw := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	switch raw {
	case "", "null", "false":
		return nil
	case "true":
		*n = 1
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*n = Number(f)
	}
	return nil
}

func (n Number) String() string {
	return fmt.Sprintf("%g", float64(n))
}
