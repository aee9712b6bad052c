package parser

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Info describes a registered parser.
type Info struct {
	Kind        Kind
	Name        string
	Aliases     []string
	Description string
}

var (
	registry = orderedmap.New[string, Info]()
	aliases  = map[string]Kind{}
)

func register(info Info) {
	registry.Set(info.Name, info)
	aliases[info.Name] = info.Kind
	for _, alias := range info.Aliases {
		aliases[alias] = info.Kind
	}
}

func init() {
	// Registration order is the order shown in help and completion.
	register(Info{Kind: Spaces, Name: "spaces", Description: "Space-separated values"})
	register(Info{Kind: TSV, Name: "tsv", Aliases: []string{"tabs"}, Description: "Tab-separated values"})
	register(Info{Kind: CSV, Name: "csv", Description: "Comma-separated values, '#' starts a comment"})
	register(Info{Kind: LevelMessage, Name: "level-message", Aliases: []string{"level"}, Description: `Simple "LEVEL: MESSAGE" log format`})
	register(Info{Kind: JournalJSON, Name: "journal-json", Aliases: []string{"journal"}, Description: "journalctl -o json output"})
	register(Info{Kind: Raw, Name: "raw", Description: "Whole line in a single column"})
}

// Lookup returns the parser registered under name or one of its aliases.
// Matching is case-insensitive.
func Lookup(name string) (Kind, error) {
	if k, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown parser %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the primary name of every parser in registration order.
func Names() []string {
	names := make([]string, 0, registry.Len())
	for name := range registry.FromOldest() {
		names = append(names, name)
	}
	return names
}

// All returns the description of every parser in registration order.
func All() []Info {
	infos := make([]Info, 0, registry.Len())
	for _, info := range registry.FromOldest() {
		infos = append(infos, info)
	}
	return infos
}

// Describe returns the registry entry for k.
func (k Kind) Describe() Info {
	for _, info := range registry.FromOldest() {
		if info.Kind == k {
			return info
		}
	}
	return Info{Kind: k, Name: fmt.Sprintf("kind(%d)", int(k))}
}

func (k Kind) String() string {
	return k.Describe().Name
}

var _ pflag.Value = (*Kind)(nil)

// Set implements pflag.Value so a Kind can be bound directly to a flag.
func (k *Kind) Set(name string) error {
	parsed, err := Lookup(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *Kind) Type() string {
	return "parser"
}
