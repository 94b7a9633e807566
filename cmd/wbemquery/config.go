package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/coreidcc/go-wbemcore/com/comtest"
)

// wbemquery config.toml key mapping to harness settings.
type fileConfig struct {
	Namespace string           `toml:"namespace"`
	Classes   []classConfig    `toml:"class"`
	Scenarios []scenarioConfig `toml:"scenario"`
}

type classConfig struct {
	Name      string           `toml:"name"`
	Instances []map[string]any `toml:"instance"`
}

type scenarioConfig struct {
	// Exactly one of Query and Class is set.
	Query string `toml:"query"`
	Class string `toml:"class"`

	// ExpectRows, when present, asserts the number of streamed rows.
	ExpectRows *int `toml:"expect_rows"`
}

type harnessConfig struct {
	Namespace string
	Classes   []classConfig
	Scenarios []scenarioConfig
}

func defaultConfig() harnessConfig {
	return harnessConfig{Namespace: "ROOT/cimv2"}
}

// loadConfig reads the TOML harness definition and overlays it onto
// the defaults.
func loadConfig(path string) (harnessConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return harnessConfig{}, fmt.Errorf("load harness config: %w", err)
	}

	if meta.IsDefined("namespace") {
		cfg.Namespace = strings.TrimSpace(raw.Namespace)
	}
	cfg.Classes = raw.Classes
	cfg.Scenarios = raw.Scenarios

	return cfg, cfg.validate()
}

func (c harnessConfig) validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace required")
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one [[scenario]] required")
	}
	for i, sc := range c.Scenarios {
		if (sc.Query == "") == (sc.Class == "") {
			return fmt.Errorf("scenario %d: exactly one of query and class required", i)
		}
	}
	return nil
}

// seed populates a fake service with the configured classes. TOML
// scalars map onto the closest native tags: integers arrive as signed
// 64 bit, floats as 64-bit reals.
func (c harnessConfig) seed() (*comtest.Service, error) {
	svc := comtest.NewService(c.Namespace)
	for _, cl := range c.Classes {
		cls := svc.Class(c.Namespace, cl.Name)
		for _, inst := range cl.Instances {
			props, err := instanceProps(inst)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", cl.Name, err)
			}
			cls.Add(comtest.NewInstance(props...))
		}
	}
	return svc, nil
}

func instanceProps(fields map[string]any) ([]comtest.Prop, error) {
	props := make([]comtest.Prop, 0, len(fields))
	for name, value := range fields {
		switch v := value.(type) {
		case string:
			props = append(props, comtest.Str(name, v))
		case int64:
			props = append(props, comtest.I64(name, v))
		case float64:
			props = append(props, comtest.R64(name, v))
		case bool:
			props = append(props, comtest.Boolean(name, v))
		default:
			return nil, fmt.Errorf("property %s: unsupported TOML type %T", name, value)
		}
	}
	sortProps(props)
	return props, nil
}

// sortProps gives map-sourced properties a stable order so Names and
// the printed rows are deterministic.
func sortProps(props []comtest.Prop) {
	for i := 1; i < len(props); i++ {
		for j := i; j > 0 && props[j].Name < props[j-1].Name; j-- {
			props[j], props[j-1] = props[j-1], props[j]
		}
	}
}
