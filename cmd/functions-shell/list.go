package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/WhatsThatItsPat/quickstart-testing/internal/functions"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := functions.Definitions()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tRESOURCE\tLAMBDA")
			for _, name := range registry.Names() {
				def, _ := registry.Get(name)
				resource := def.Resource
				if resource == "" {
					resource = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, def.Kind, resource, def.Lambda)
			}
			return w.Flush()
		},
	}
}
