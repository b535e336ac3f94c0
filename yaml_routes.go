package infobip

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlRoute struct {
	Method string   `yaml:"method"`
	Path   string   `yaml:"path"`
	Params []string `yaml:"params,omitempty"`
}

// WriteRoutes writes a YAML list of operations grouped by the first path
// segment:
//
//	sms:
//	  GetSMSDeliveryReports:
//	    method: GET
//	    path: /sms/1/reports
//	    params:
//	      - bulkId
//	      - messageId
//	      - limit
//
// Required params keep the "*" suffix.
func WriteRoutes(w io.Writer, descriptors []*Descriptor) error {
	routes := make(map[string]map[string]yamlRoute)
	for _, d := range descriptors {
		tag := pathTag(d.Path)
		if routes[tag] == nil {
			routes[tag] = make(map[string]yamlRoute)
		}
		if _, has := routes[tag][d.Name]; has {
			return fmt.Errorf("duplicate operation %s", d.Name)
		}
		route := yamlRoute{
			Method: d.Method,
			Path:   d.Path,
		}
		for _, p := range d.Params {
			route.Params = append(route.Params, p.Name)
		}
		routes[tag][d.Name] = route
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(routes); err != nil {
		return fmt.Errorf("failed to encode routes: %w", err)
	}
	return enc.Close()
}
