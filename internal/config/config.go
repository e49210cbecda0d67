package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

type actionEntry struct {
	Key                   string            `json:"key"`
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Cost                  int               `json:"cost"`
	ConflictRefundPercent int               `json:"conflict_refund_percent"`
	Effect                game.ActionEffect `json:"effect"`
}

type rawConfig struct {
	ActionList []actionEntry `json:"action_list"`
	Rules      *game.Rules   `json:"rules"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional prompt template used when asking the opponent model for a
	// decision. Use the token {{snapshot}} where the serialized round
	// snapshot will be substituted. If omitted, a built-in default is used.
	DecisionPrompt string `json:"decision_prompt"`
}

// LoadedConfig contains the action catalog, contest rules and the server
// address to bind to.
type LoadedConfig struct {
	Catalog       game.Catalog
	Rules         game.Rules
	ServerAddress string
	// Optional decision prompt template loaded from config.
	DecisionPromptTemplate string
}

func defaultRules() game.Rules {
	return game.Rules{
		StartingBalance:        100,
		TargetScore:            20,
		RoundLimit:             20,
		MaintenanceInterval:    2,
		MaintenanceIncrement:   5,
		BasePool:               1,
		ConfirmTimeoutSeconds:  90,
		DecisionTimeoutSeconds: 30,
	}
}

// LoadConfig reads the configuration file at path and returns the action
// catalog, rules and server address. It requires the key `action_list`
// (snake_case).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.ActionList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: action_list is empty (provide 'action_list' array)", path)
	}

	catalog := make(game.Catalog, len(entries))
	for _, a := range entries {
		key := strings.TrimSpace(a.Key)
		if key == "" {
			return nil, fmt.Errorf("config file %s: action entry missing 'key'", path)
		}
		if a.Cost < 0 {
			return nil, fmt.Errorf("config file %s: action '%s' has negative cost", path, key)
		}
		if a.ConflictRefundPercent < 0 || a.ConflictRefundPercent > 100 {
			return nil, fmt.Errorf("config file %s: action '%s' refund percent out of [0,100]", path, key)
		}
		eff := a.Effect
		if eff.StealChancePercent < 0 || eff.StealChancePercent > 100 {
			return nil, fmt.Errorf("config file %s: action '%s' steal chance out of [0,100]", path, key)
		}
		if eff.PoolRangeMin > eff.PoolRangeMax {
			return nil, fmt.Errorf("config file %s: action '%s' pool range min > max", path, key)
		}
		at := game.ActionType(key)
		if _, exists := catalog[at]; exists {
			return nil, fmt.Errorf("config file %s: duplicate action key '%s'", path, key)
		}
		catalog[at] = game.ActionSpec{
			Key:                   at,
			Name:                  a.Name,
			Description:           a.Description,
			Cost:                  a.Cost,
			ConflictRefundPercent: a.ConflictRefundPercent,
			Effect:                eff,
		}
	}

	rules := defaultRules()
	if rc.Rules != nil {
		rules = mergeRules(rules, *rc.Rules)
	}
	if rules.MaintenanceInterval <= 0 {
		return nil, fmt.Errorf("config file %s: maintenance_interval must be positive", path)
	}
	if rules.StartingBalance <= 0 {
		return nil, fmt.Errorf("config file %s: starting_balance must be positive", path)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Catalog:                catalog,
		Rules:                  rules,
		ServerAddress:          addr,
		DecisionPromptTemplate: strings.TrimSpace(rc.DecisionPrompt),
	}, nil
}

// mergeRules overlays non-zero fields from the config file over defaults so
// operators only specify what they change.
func mergeRules(base, over game.Rules) game.Rules {
	if over.StartingBalance != 0 {
		base.StartingBalance = over.StartingBalance
	}
	if over.TargetScore != 0 {
		base.TargetScore = over.TargetScore
	}
	if over.RoundLimit != 0 {
		base.RoundLimit = over.RoundLimit
	}
	if over.MaintenanceInterval != 0 {
		base.MaintenanceInterval = over.MaintenanceInterval
	}
	if over.MaintenanceIncrement != 0 {
		base.MaintenanceIncrement = over.MaintenanceIncrement
	}
	if over.BasePool != 0 {
		base.BasePool = over.BasePool
	}
	if over.ConfirmTimeoutSeconds != 0 {
		base.ConfirmTimeoutSeconds = over.ConfirmTimeoutSeconds
	}
	if over.DecisionTimeoutSeconds != 0 {
		base.DecisionTimeoutSeconds = over.DecisionTimeoutSeconds
	}
	return base
}
