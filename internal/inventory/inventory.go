package inventory

import (
	"encoding/json"
	"regexp"
)

// Group is one Ansible inventory group.
type Group struct {
	Hosts []string       `json:"hosts"`
	Vars  map[string]any `json:"vars"`
}

// Document is the full dynamic-inventory payload. Groups marshal as
// top-level keys beside _meta, per the Ansible external-inventory contract.
type Document struct {
	Groups   map[string]*Group
	HostVars map[string]map[string]any
}

// NewDocument returns an empty document with the mandatory keys in place.
func NewDocument() *Document {
	return &Document{
		Groups:   map[string]*Group{},
		HostVars: map[string]map[string]any{},
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Groups)+1)
	for name, g := range d.Groups {
		m[name] = g
	}
	m["_meta"] = map[string]any{"hostvars": d.HostVars}
	return json.Marshal(m)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Groups = map[string]*Group{}
	d.HostVars = map[string]map[string]any{}

	for name, v := range raw {
		if name == "_meta" {
			var meta struct {
				HostVars map[string]map[string]any `json:"hostvars"`
			}
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			if meta.HostVars != nil {
				d.HostVars = meta.HostVars
			}
			continue
		}
		var g Group
		if err := json.Unmarshal(v, &g); err != nil {
			return err
		}
		d.Groups[name] = &g
	}
	return nil
}

// group returns the named group, creating it on first use.
func (d *Document) group(name string) *Group {
	g, ok := d.Groups[name]
	if !ok {
		g = &Group{Hosts: []string{}, Vars: map[string]any{}}
		d.Groups[name] = g
	}
	return g
}

var unsafeGroupChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// SafeGroupName replaces characters Ansible cannot digest in group names
// with underscores.
func SafeGroupName(name string) string {
	return unsafeGroupChars.ReplaceAllString(name, "_")
}
