package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// servicesFileDoc is the shape of a -services-file override: a flat
// list of DNS-SD service-type strings, replacing discovery.ServiceTypes
// wholesale.
type servicesFileDoc struct {
	ServiceTypes []string `yaml:"service_types"`
}

func loadServiceTypes(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc servicesFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.ServiceTypes) == 0 {
		return nil, fmt.Errorf("%s: service_types is empty", path)
	}

	return doc.ServiceTypes, nil
}
