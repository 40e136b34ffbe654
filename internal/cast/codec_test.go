package cast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"prompt", Event{Time: 0, Kind: Printed, Data: "$ "}, `[0,"o","$ "]`},
		{"keystroke", Event{Time: 0.75, Kind: Printed, Data: "e"}, `[0.75,"o","e"]`},
		{"newline", Event{Time: 1.88, Kind: Printed, Data: "\r\n"}, `[1.88,"o","\r\n"]`},
		{"terminator", Event{Time: 3.88, Kind: Printed, Data: ""}, `[3.88,"o",""]`},
		{"keypress", Event{Time: 0.75, Kind: Keypress, Data: "e"}, `[0.75,"i","e"]`},
		{"truncates to milliseconds", Event{Time: 1.23456, Kind: Printed, Data: "x"}, `[1.234,"o","x"]`},
		{"no html escaping", Event{Time: 0, Kind: Printed, Data: "<prompt> &"}, `[0,"o","<prompt> &"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEventUnmarshalJSON(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`[2.3,"o","Hello, World!\r\n"]`), &e))
	assert.Equal(t, 2.3, e.Time)
	assert.Equal(t, Printed, e.Kind)
	assert.Equal(t, "Hello, World!\r\n", e.Data)
}

func TestEventUnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too few elements", `[2.3,"o"]`},
		{"too many elements", `[2.3,"o","x","y"]`},
		{"non-numeric timestamp", `["x","o","y"]`},
		{"not an array", `{"time":2.3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Event
			assert.Error(t, json.Unmarshal([]byte(tt.in), &e))
		})
	}
}

func TestEncode(t *testing.T) {
	c := New(testHeader())
	require.NoError(t, c.Append(Event{Time: 0, Kind: Printed, Data: "$ "}))
	require.NoError(t, c.Append(Event{Time: 0.75, Kind: Printed, Data: "l"}))
	require.NoError(t, c.Append(Event{Time: 1.67, Kind: Printed, Data: "\r\n"}))

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	want := `{"version":2,"width":80,"height":24,"env":{"SHELL":"/bin/bash","TERM":"xterm-256color"}}
[0,"o","$ "]
[0.75,"o","l"]
[1.67,"o","\r\n"]
`
	assert.Equal(t, want, buf.String())
}

func TestEncode_HeaderOptionalFields(t *testing.T) {
	h := testHeader()
	h.Timestamp = 1630000000
	h.Title = "demo"
	c := New(h)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	line, _, _ := strings.Cut(buf.String(), "\n")
	assert.Contains(t, line, `"timestamp":1630000000`)
	assert.Contains(t, line, `"title":"demo"`)
	assert.NotContains(t, line, "duration")
	assert.NotContains(t, line, "theme")
}

func TestDecode_RoundTrip(t *testing.T) {
	c := New(testHeader())
	require.NoError(t, c.Append(Event{Time: 0, Kind: Printed, Data: "$ "}))
	require.NoError(t, c.Append(Event{Time: 0.75, Kind: Printed, Data: "x"}))
	require.NoError(t, c.Append(Event{Time: 3.88, Kind: Printed, Data: ""}))

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Header, decoded.Header)
	assert.Equal(t, c.Events, decoded.Events)
}

func TestDecode_SkipsBlankLines(t *testing.T) {
	in := `{"version":2,"width":80,"height":24,"env":{"SHELL":"/bin/sh","TERM":"xterm"}}

[0,"o","$ "]
`
	c, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, c.Events, 1)
	assert.Equal(t, "$ ", c.Events[0].Data)
}

func TestDecode_RejectsUnsupportedVersion(t *testing.T) {
	in := `{"version":1,"width":80,"height":24}`
	_, err := Decode(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDecode_RejectsOutOfOrderEvents(t *testing.T) {
	in := `{"version":2,"width":80,"height":24,"env":{"SHELL":"/bin/sh","TERM":"xterm"}}
[1.5,"o","a"]
[1.4,"o","b"]
`
	_, err := Decode(strings.NewReader(in))
	require.Error(t, err)

	var ordErr *OrderingError
	assert.ErrorAs(t, err, &ordErr)
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
