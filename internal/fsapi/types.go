package fsapi

import (
	"encoding/xml"
	"fmt"
)

// Device status codes carried in the response envelope.
const (
	statusOK      = "FS_OK"
	statusListEnd = "FS_LIST_END"
)

// envelope mirrors the fsapiResponse document every endpoint returns.
type envelope struct {
	XMLName   xml.Name   `xml:"fsapiResponse"`
	Status    string     `xml:"status"`
	SessionID string     `xml:"sessionId"`
	Value     *value     `xml:"value"`
	Items     []listItem `xml:"item"`
}

// value holds the typed payload of a GET response. The device populates
// exactly one member depending on the node's declared type.
type value struct {
	C8Array *string `xml:"c8_array"`
	U8      *int    `xml:"u8"`
	U32     *int    `xml:"u32"`
}

// text returns the envelope's string payload, or an error naming the node
// when the device answered without one.
func (e *envelope) text(node string) (string, error) {
	if e.Value == nil || e.Value.C8Array == nil {
		return "", fmt.Errorf("node %s returned no text value", node)
	}
	return *e.Value.C8Array, nil
}

// number returns the envelope's numeric payload, whichever width the
// device encoded it with.
func (e *envelope) number(node string) (int, error) {
	if e.Value != nil {
		if e.Value.U8 != nil {
			return *e.Value.U8, nil
		}
		if e.Value.U32 != nil {
			return *e.Value.U32, nil
		}
	}
	return 0, fmt.Errorf("node %s returned no numeric value", node)
}

// listItem is one row of a LIST_GET_NEXT response. Key is the row token
// that SET operations on the list's companion nodes expect.
type listItem struct {
	Key    string      `xml:"key,attr"`
	Fields []listField `xml:"field"`
}

type listField struct {
	Name    string `xml:"name,attr"`
	C8Array string `xml:"c8_array"`
	U8      string `xml:"u8"`
}

// field returns the named field's text content, or "" when the field is
// absent or empty.
func (i listItem) field(name string) string {
	for _, f := range i.Fields {
		if f.Name == name {
			if f.C8Array != "" {
				return f.C8Array
			}
			return f.U8
		}
	}
	return ""
}
