package taskio

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/atlantispak/packplan/internal/rules"
)

// LoadRules reads eligibility rules from a YAML or JSON file with a
// top-level "rules" list of {id, condition, priority} entries.
func LoadRules(path string) ([]rules.Rule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("taskio: failed to read rules file: %w", err)
	}

	var loaded []rules.Rule
	if err := v.UnmarshalKey("rules", &loaded); err != nil {
		return nil, fmt.Errorf("taskio: failed to parse rules file: %w", err)
	}

	for i, r := range loaded {
		if r.ID == "" {
			return nil, fmt.Errorf("taskio: rule %d has no id", i)
		}
		if r.Condition == "" {
			return nil, fmt.Errorf("taskio: rule %s has no condition", r.ID)
		}
	}
	return loaded, nil
}
