package commands

import (
	"github.com/olekukonko/tablewriter"
)

// RulesCmd implements the 'rules' command.
type RulesCmd struct{}

func (r *RulesCmd) Run(_ *Global, root *CLI) error {
	_, rules, err := root.loadConfig()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(root.out())
	table.SetHeader([]string{"Category", "Kind", "Pattern"})
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	for _, rule := range rules.Rules() {
		table.Append([]string{string(rule.Category), string(rule.Kind), rule.Pattern})
	}
	table.Render()
	return nil
}
