package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibekanban/desktop/client"
	"github.com/vibekanban/desktop/common/api"
)

var (
	callParams []string
	callData   string
)

var callCmd = &cobra.Command{
	Use:   "call VERB PATH",
	Short: "Send one generic request through the client",
	Long: `Send one request through the client and print the JSON result.

Examples:
  vibekanban call GET /api/projects
  vibekanban call --socket POST /api/projects --data '{"name":"Demo"}'
  vibekanban call GET /api/tasks -p project_id=...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		verb := api.Verb(strings.ToUpper(args[0]))
		if !verb.Valid() {
			return fmt.Errorf("unknown verb %q", args[0])
		}

		req := client.Request{Verb: verb, Path: args[1]}
		if len(callParams) > 0 {
			req.Params = client.Params{}
			for _, kv := range callParams {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return fmt.Errorf("invalid param %q (want key=value)", kv)
				}
				req.Params[k] = v
			}
		}
		if callData != "" {
			if !json.Valid([]byte(callData)) {
				return fmt.Errorf("--data is not valid JSON")
			}
			req.Body = json.RawMessage(callData)
		}

		c, release, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer release()

		out, err := c.Do(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

func printJSON(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = os.Stdout.Write(raw)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(os.Stdout)
	return err
}

func init() {
	callCmd.Flags().StringArrayVarP(&callParams, "param", "p", nil, "query parameter key=value (repeatable)")
	callCmd.Flags().StringVarP(&callData, "data", "d", "", "JSON request body")
	rootCmd.AddCommand(callCmd)
}
