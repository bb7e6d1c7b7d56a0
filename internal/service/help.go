package service

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed help.yaml
var helpYAML []byte

// CommandHelp is one entry of the static help catalogue.
type CommandHelp struct {
	Description string `yaml:"description"`
	Usage       string `yaml:"usage"`
	Details     string `yaml:"details"`
}

var commandHelp = mustParseHelp()

func mustParseHelp() map[string]CommandHelp {
	m := map[string]CommandHelp{}
	if err := yaml.Unmarshal(helpYAML, &m); err != nil {
		panic(fmt.Sprintf("parse embedded help catalogue: %v", err))
	}
	return m
}

// Help looks up the entry for one command name. ok is false for unknown
// names; the caller then lists HelpIndex instead.
func (s *Service) Help(name string) (CommandHelp, bool) {
	h, ok := commandHelp[name]
	return h, ok
}

// HelpIndex returns every known command name in sorted order.
func (s *Service) HelpIndex() []string {
	names := make([]string, 0, len(commandHelp))
	for n := range commandHelp {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
