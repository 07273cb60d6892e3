// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hpigo/internal/cli"
)

// File mirrors the flag surface so a run can be captured in one YAML
// document. Explicitly-given flags always win over file values.
type File struct {
	Host     string `yaml:"host"`
	Pathogen string `yaml:"pathogen"`
	OBO      string `yaml:"obo"`

	Ontology  string   `yaml:"ontology"`
	Method    string   `yaml:"method"`
	Combine   string   `yaml:"combine"`
	Threshold *float64 `yaml:"threshold"`

	Threads   int   `yaml:"threads"`
	ChunkSize int64 `yaml:"chunk_size"`

	Filter string `yaml:"filter"`
	Cache  struct {
		Addr string `yaml:"addr"`
		DB   int    `yaml:"db"`
		TTL  string `yaml:"ttl"`
	} `yaml:"cache"`

	Output string `yaml:"output"`
	Sort   *bool  `yaml:"sort"`
}

// Load reads and parses a YAML run configuration.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: parse yaml: %w", path, err)
	}
	return &f, nil
}

// Apply overlays file values onto opts for every flag the user did not
// set explicitly (set is the fs.Visit record from cli.ParseArgs).
func (f *File) Apply(opts *cli.Options, set map[string]bool) {
	if !set["host"] && f.Host != "" {
		opts.HostFile = f.Host
	}
	if !set["pathogen"] && f.Pathogen != "" {
		opts.PathogenFile = f.Pathogen
	}
	if !set["obo"] && f.OBO != "" {
		opts.OBOFile = f.OBO
	}
	if !set["ontology"] && f.Ontology != "" {
		opts.Ontology = f.Ontology
	}
	if !set["method"] && f.Method != "" {
		opts.Method = f.Method
	}
	if !set["combine"] && f.Combine != "" {
		opts.Combine = f.Combine
	}
	if !set["threshold"] && f.Threshold != nil {
		opts.Threshold = *f.Threshold
	}
	if !set["threads"] && !set["t"] && f.Threads != 0 {
		opts.Threads = f.Threads
	}
	if !set["chunk-size"] && f.ChunkSize != 0 {
		opts.ChunkSize = f.ChunkSize
	}
	if !set["filter"] && f.Filter != "" {
		opts.Filter = f.Filter
	}
	if !set["cache"] && f.Cache.Addr != "" {
		opts.CacheAddr = f.Cache.Addr
	}
	if !set["cache-db"] && f.Cache.DB != 0 {
		opts.CacheDB = f.Cache.DB
	}
	if !set["cache-ttl"] && f.Cache.TTL != "" {
		opts.CacheTTL = f.Cache.TTL
	}
	if !set["output"] && !set["o"] && f.Output != "" {
		opts.Output = f.Output
	}
	if !set["sort"] && f.Sort != nil {
		opts.Sort = *f.Sort
	}
}
