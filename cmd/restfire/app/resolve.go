// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/restfire/restfire/pkg/collection"
	"github.com/restfire/restfire/pkg/request"
)

func newResolveCmd() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "resolve <collection> <request>",
		Short: "Show a request after variable resolution without sending it",
		Long: `Resolve all variables in a named request and print the result.
Secret values are masked. Nothing is sent over the network, but built-in
generators still produce fresh values.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolveCmdFunc(cmd, args[0], args[1], envName)
		},
	}

	cmd.Flags().StringVarP(&envName, "env", "e", "", "Environment to resolve variables against")

	return cmd
}

func resolveCmdFunc(cmd *cobra.Command, collectionPath, requestName, envName string) error {
	coll, err := collection.Load(collectionPath)
	if err != nil {
		return err
	}
	req, err := coll.Request(requestName)
	if err != nil {
		return err
	}

	res, err := buildResolver(cmd.Context(), cmd, coll, envName)
	if err != nil {
		return err
	}
	resolved := request.ResolveRequest(res, req)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", resolved.Method, resolved.URL)
	for _, h := range resolved.Headers {
		if h.Enabled {
			fmt.Fprintf(out, "%s: %s\n", h.Key, h.Value)
		}
	}
	for _, p := range resolved.QueryParams {
		if p.Enabled {
			fmt.Fprintf(out, "?%s=%s\n", p.Key, p.Value)
		}
	}
	if resolved.Body.Kind != request.BodyNone && resolved.Body.Content != "" {
		fmt.Fprintf(out, "\n%s\n", resolved.Body.Content)
	}

	if len(resolved.URLResult.ResolvedVariables) > 0 {
		fmt.Fprintln(out, "\nVariables:")
		for _, v := range resolved.URLResult.ResolvedVariables {
			value := v.Value
			if v.Secret {
				value = maskedValue
			}
			fmt.Fprintf(out, "  %s = %s (%s)\n", v.Name, value, v.Scope)
		}
	}

	if !resolved.IsComplete {
		fmt.Fprintf(out, "\nUnresolved: %s\n", strings.Join(resolved.Unresolved, ", "))
	}
	return nil
}
