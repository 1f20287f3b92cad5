package main

import (
	"fmt"
	"io"
	"persona-relay/domain"
	"persona-relay/persona"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newPersonasCommand() *cobra.Command {
	var file, user string
	cmd := &cobra.Command{
		Use:   "personas",
		Short: "Validate a persona file and list its personas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			personas, err := persona.LoadFile(file)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			registry, err := persona.NewRegistry(personas)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}
			out := cmd.OutOrStdout()
			if user != "" {
				personas = registry.ListAvailable(user)
			}
			renderPersonas(out, personas)
			fmt.Fprintln(out, color.Green.Sprintf("%d persona(s), file is valid", len(personas)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "personas.yaml", "persona file to validate")
	cmd.Flags().StringVar(&user, "user", "", "only list personas this user may use")
	return cmd
}

func renderPersonas(w io.Writer, personas []domain.Persona) {
	table := newTable(w, []string{"Selector", "Name", "Aliases", "Access"})
	for _, p := range personas {
		access := "everyone"
		if p.RestrictedUsers != nil {
			access = fmt.Sprintf("%d user(s)", len(p.RestrictedUsers))
		}
		table.Append([]string{p.Canonical(), p.Name, strings.Join(p.Selectors[1:], ", "), access})
	}
	table.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
