package fixture

import (
	"io"
	"strings"
	"testing"
)

func TestLoadBytes_DecodesNestedDocument(t *testing.T) {
	doc, err := LoadBytes([]byte(`{"name":"","models":[{"name":"Widget","properties":[{"name":"id","type":{"kind":"string","value":""}}]}]}`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("expected object root, got %T", doc)
	}
	if m["name"] != "" {
		t.Fatalf("expected empty root namespace name, got %v", m["name"])
	}
}

func TestBuildNamespace_ModelsAndProperties(t *testing.T) {
	doc, err := LoadBytes([]byte(`{
		"name": "",
		"models": [
			{"name": "Widget", "properties": [
				{"name": "id", "type": {"kind": "string", "value": ""}},
				{"name": "label", "type": {"kind": "string", "value": ""}, "optional": true}
			]}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	ns, err := BuildNamespace(doc)
	if err != nil {
		t.Fatalf("BuildNamespace: %v", err)
	}
	if len(ns.Models) != 1 || ns.Models[0].Name != "Widget" {
		t.Fatalf("unexpected models: %+v", ns.Models)
	}
	label := ns.Models[0].PropertyByName("label")
	if label == nil || !label.Optional {
		t.Fatalf("expected optional label property, got %+v", label)
	}
}

func TestLoadYAML_MatchesJSONShape(t *testing.T) {
	yamlDoc := `
name: ""
models:
  - name: Widget
    properties:
      - name: id
        type: {kind: string, value: ""}
`
	doc, err := LoadYAML(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	ns, err := BuildNamespace(doc)
	if err != nil {
		t.Fatalf("BuildNamespace: %v", err)
	}
	if len(ns.Models) != 1 || ns.Models[0].Name != "Widget" {
		t.Fatalf("unexpected models: %+v", ns.Models)
	}
}

func TestActiveDriverName_DefaultsToStdlib(t *testing.T) {
	if got := ActiveDriverName(); got != "encoding/json" {
		t.Fatalf("expected stdlib driver by default, got %q", got)
	}
}

func TestSetDriver_SwapsTheBackendLoadUses(t *testing.T) {
	defer SetDriver(stdlibDriver{})

	spy := &spyDriver{Driver: stdlibDriver{}}
	SetDriver(spy)
	if ActiveDriverName() != "encoding/json" {
		t.Fatalf("expected the spy driver's wrapped name, got %q", ActiveDriverName())
	}
	if _, err := LoadBytes([]byte(`{"name":""}`)); err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if !spy.used {
		t.Fatalf("expected Load to route through the driver set via SetDriver")
	}
}

type spyDriver struct {
	Driver
	used bool
}

func (s *spyDriver) NewReader(r io.Reader) TokenSource {
	s.used = true
	return s.Driver.NewReader(r)
}

func TestBuildNamespace_ResolvesCyclicRefByIdentity(t *testing.T) {
	doc, err := LoadBytes([]byte(`{
		"name": "",
		"models": [
			{"name": "A", "properties": [
				{"name": "b", "type": {"kind": "ref", "name": "B"}}
			]},
			{"name": "B", "properties": [
				{"name": "a", "type": {"kind": "ref", "name": "A"}}
			]}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	ns, err := BuildNamespace(doc)
	if err != nil {
		t.Fatalf("BuildNamespace: %v", err)
	}
	a, b := ns.Models[0], ns.Models[1]
	if a.PropertyByName("b").Type != b {
		t.Fatalf("expected A.b to reference B by identity")
	}
	if b.PropertyByName("a").Type != a {
		t.Fatalf("expected B.a to reference A by identity")
	}
}
