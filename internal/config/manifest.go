package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists the files backing each dataset. Files of one dataset are
// concatenated in the listed order. Paths ending in .gz or .zst are
// decompressed on read.
type Manifest struct {
	Tickets       []string `yaml:"tickets"`
	AWSHeartbeats []string `yaml:"aws_heartbeats"`
	GCPHeartbeats []string `yaml:"gcp_heartbeats"`
	Aging         []string `yaml:"aging"`
}

// LoadManifest reads a YAML manifest. Lists omitted from the file keep the
// defaults.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read data manifest: %w", err)
	}
	var parsed Manifest
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Manifest{}, fmt.Errorf("parse data manifest %s: %w", path, err)
	}
	m := manifestFromEnv()
	if parsed.Tickets != nil {
		m.Tickets = parsed.Tickets
	}
	if parsed.AWSHeartbeats != nil {
		m.AWSHeartbeats = parsed.AWSHeartbeats
	}
	if parsed.GCPHeartbeats != nil {
		m.GCPHeartbeats = parsed.GCPHeartbeats
	}
	if parsed.Aging != nil {
		m.Aging = parsed.Aging
	}
	return m, nil
}

func manifestFromEnv() Manifest {
	return Manifest{
		Tickets:       getEnvAsList("DATA_TICKET_FILES", []string{"aws_ticket_data.csv", "gcp_ticket_data.csv"}),
		AWSHeartbeats: getEnvAsList("DATA_AWS_HEARTBEAT_FILES", []string{"aws_heartbeat_ticket_data.csv"}),
		GCPHeartbeats: getEnvAsList("DATA_GCP_HEARTBEAT_FILES", []string{"gcp_heartbeat_ticket_data.csv"}),
		Aging:         getEnvAsList("DATA_AGING_FILES", []string{"data/soc_output_summary.csv"}),
	}
}
