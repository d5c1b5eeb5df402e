package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

var (
	listSearch string
	listStatus string
	editSets   []string
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List and edit clients from the terminal",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openLocal(cmd.Context())
		if err != nil {
			return err
		}
		defer a.db.Close()

		list, err := a.Clients.ListClients(cmd.Context(), usecase.ListClientsInput{
			Search: listSearch,
			Status: listStatus,
		})
		if err != nil {
			return err
		}
		return printClients(cmd.OutOrStdout(), list)
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a client's fields",
	Long: `Opens the record, applies every --set field=value as one draft and
saves only the fields that were set.

Example:
  crm clients edit 3f2a... --set price=1250 --set notes="Phase 2"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sets, err := parseSets(editSets)
		if err != nil {
			return err
		}

		a, err := openLocal(ctx)
		if err != nil {
			return err
		}
		defer a.db.Close()

		ws := usecase.NewWorkspace(a.Clients)
		id := args[0]
		if _, err := ws.Open(ctx, id); err != nil {
			return err
		}
		if err := ws.Begin(id); err != nil {
			return err
		}
		for _, kv := range sets {
			if err := ws.Set(id, kv[0], kv[1]); err != nil {
				_ = ws.Cancel(id)
				return fmt.Errorf("campo %s: %w", kv[0], err)
			}
		}
		saved, err := ws.Commit(ctx, id)
		if err != nil {
			return err
		}
		return printClients(cmd.OutOrStdout(), []*entity.Client{&saved})
	},
}

func init() {
	clientsListCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive name filter")
	clientsListCmd.Flags().StringVar(&listStatus, "status", "All", "Pending, In Progress, Completed or All")
	clientsEditCmd.Flags().StringArrayVar(&editSets, "set", nil, "field=value (repeatable)")
	_ = clientsEditCmd.MarkFlagRequired("set")

	clientsCmd.AddCommand(clientsListCmd, clientsEditCmd)
}

func parseSets(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, r := range raw {
		field, value, ok := strings.Cut(r, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("use field=value, recebido %q", r)
		}
		out = append(out, [2]string{field, value})
	}
	return out, nil
}

func printClients(w io.Writer, list []*entity.Client) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERVICE\tPRICE\tSTATUS\tSTAGE")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			shortID(c.ID), c.Name, c.Service, c.Price, c.Status, c.PipelineStage)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
