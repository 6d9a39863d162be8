// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/restfire/restfire/pkg/auth/oauth"
	"github.com/restfire/restfire/pkg/auth/tokenstore"
	"github.com/restfire/restfire/pkg/collection"
	"github.com/restfire/restfire/pkg/networking"
	"github.com/restfire/restfire/pkg/request"
	"github.com/restfire/restfire/pkg/runner"
)

type sendFlags struct {
	envName     string
	extract     string
	timeout     time.Duration
	retries     int
	caBundle    string
	insecure    bool
	showHeaders bool
	failOnError bool
}

func newSendCmd() *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send <collection> <request>",
		Short: "Execute a request from a collection",
		Long: `Execute a named request from a collection file. Variables are resolved
against the selected environment before the request is sent, and the
response body is printed to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCmdFunc(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.envName, "env", "e", "", "Environment to resolve variables against")
	cmd.Flags().StringVar(&flags.extract, "extract", "", "GJSON path to extract from a JSON response body")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", networking.HTTPTimeout, "Request timeout")
	cmd.Flags().IntVar(&flags.retries, "retries", 0, "Retries for network errors and 5xx responses")
	cmd.Flags().StringVar(&flags.caBundle, "ca-bundle", "", "Path to a CA certificate bundle")
	cmd.Flags().BoolVarP(&flags.insecure, "insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().BoolVarP(&flags.showHeaders, "include", "i", false, "Include response status and headers in the output")
	cmd.Flags().BoolVarP(&flags.failOnError, "fail", "f", false, "Exit with an error on 4xx and 5xx responses")

	return cmd
}

func sendCmdFunc(cmd *cobra.Command, collectionPath, requestName string, flags *sendFlags) error {
	ctx := cmd.Context()

	coll, err := collection.Load(collectionPath)
	if err != nil {
		return err
	}
	req, err := coll.Request(requestName)
	if err != nil {
		return err
	}

	res, err := buildResolver(ctx, cmd, coll, flags.envName)
	if err != nil {
		return err
	}
	resolvedReq := request.ResolveRequest(res, req)

	client, err := networking.NewHTTPClientBuilder().
		WithTimeout(flags.timeout).
		WithCABundle(flags.caBundle).
		WithInsecureSkipVerify(flags.insecure).
		Build()
	if err != nil {
		return err
	}

	provider := oauth.NewProvider(tokenstore.New(), oauth.WithHTTPClient(client))
	run := runner.New(client, provider,
		runner.WithRetries(flags.retries))

	resp, err := run.Run(ctx, resolvedReq)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flags.showHeaders {
		fmt.Fprintf(out, "%s\n", resp.Status)
		for name, values := range resp.Headers {
			for _, value := range values {
				fmt.Fprintf(out, "%s: %s\n", name, value)
			}
		}
		fmt.Fprintln(out)
	}

	if flags.extract != "" {
		result := gjson.GetBytes(resp.Body, flags.extract)
		if !result.Exists() {
			return fmt.Errorf("path %q not found in response body", flags.extract)
		}
		fmt.Fprintln(out, result.String())
	} else if len(resp.Body) > 0 {
		fmt.Fprintln(out, string(resp.Body))
	}

	if flags.failOnError && resp.StatusCode >= http.StatusBadRequest {
		return networking.NewHTTPError(resp.StatusCode, resolvedReq.URL, http.StatusText(resp.StatusCode))
	}
	return nil
}
