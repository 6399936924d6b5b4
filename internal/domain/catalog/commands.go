package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/utils"
)

var defaultCommands = []types.CommandDef{
	{ID: "scan.node", Reward: 18, TraceDelta: 6, CooldownMs: 6000, Description: "Network surface scan for weak points."},
	{ID: "inject.proxy", Reward: 32, TraceDelta: 10, CooldownMs: 9000, Description: "Proxy-chain injection against low-tier relays."},
	{ID: "drain.wallet", Reward: 54, TraceDelta: 16, CooldownMs: 13000, Description: "Extract credits from compromised hot wallets."},
	{ID: "scrub.trace", Reward: 0, TraceDelta: -20, CooldownMs: 12000, Description: "Reduce active trace pressure at no credit gain."},
}

// ErrInvalidCatalog is returned when a catalog fails validation
var ErrInvalidCatalog = errors.New("invalid command catalog")

// Commands is the command definition catalog
type Commands struct {
	list []types.CommandDef
	byID map[string]types.CommandDef
}

// catalogFile is the on-disk layout shared by all three formats
type catalogFile struct {
	Commands []types.CommandDef `json:"commands" yaml:"commands" toml:"commands"`
}

// DefaultCommands returns the built-in command catalog
func DefaultCommands() *Commands {
	c, err := NewCommands(defaultCommands)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCommands validates defs and builds a catalog
func NewCommands(defs []types.CommandDef) (*Commands, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no commands", ErrInvalidCatalog)
	}

	c := &Commands{
		list: make([]types.CommandDef, 0, len(defs)),
		byID: make(map[string]types.CommandDef, len(defs)),
	}
	for i, d := range defs {
		if err := utils.ValidateCommandID(d.ID); err != nil {
			return nil, fmt.Errorf("%w: command[%d]: %v", ErrInvalidCatalog, i, err)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate command %q", ErrInvalidCatalog, d.ID)
		}
		if d.CooldownMs < 0 {
			return nil, fmt.Errorf("%w: %s: negative cooldown", ErrInvalidCatalog, d.ID)
		}
		if d.Reward < 0 {
			return nil, fmt.Errorf("%w: %s: negative reward", ErrInvalidCatalog, d.ID)
		}
		c.list = append(c.list, d)
		c.byID[d.ID] = d
	}
	return c, nil
}

// LoadCommands reads a catalog file; the format follows the extension
func LoadCommands(path string) (*Commands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read command catalog: %w", err)
	}
	return ParseCommands(data, filepath.Ext(path))
}

// ParseCommands decodes a catalog in the format named by ext (".yaml",
// ".yml", ".toml" or ".json")
func ParseCommands(data []byte, ext string) (*Commands, error) {
	var file catalogFile

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML catalog: %w", err)
		}
	case ".json":
		if err := sonic.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}

	return NewCommands(file.Commands)
}

// Command looks up a definition by id
func (c *Commands) Command(id string) (types.CommandDef, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Commands returns definitions in catalog order
func (c *Commands) Commands() []types.CommandDef {
	out := make([]types.CommandDef, len(c.list))
	copy(out, c.list)
	return out
}

// Len returns the number of commands
func (c *Commands) Len() int {
	return len(c.list)
}
