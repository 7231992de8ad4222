package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/boardsearch/internal/domain/search/request"
	chiTransport "github.com/kailas-cloud/boardsearch/internal/transport/chi"
	searchuc "github.com/kailas-cloud/boardsearch/internal/usecase/search"
)

type searchFlags struct {
	viewer    string
	entity    string
	match     string
	members   string
	labels    string
	due       string
	status    string
	workspace string
	limit     int
	cursor    string
}

func newSearchCmd(a *app) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run one search and print the JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := request.Parse(f.values(args[0]))
			if err != nil {
				return fmt.Errorf("invalid search: %w", err)
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			loc, err := a.cfg.Search.Location()
			if err != nil {
				return err
			}

			svc := searchuc.New(store, searchuc.WithLocation(loc))
			resp, err := svc.Search(cmd.Context(), f.viewer, &req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(chiTransport.SearchResponseFromResult(&resp))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.viewer, "viewer", "", "viewer user id (required)")
	flags.StringVar(&f.entity, "type", "", "entity type: all, board, card, comment, checklist, attachment")
	flags.StringVar(&f.match, "match", "", "facet match mode: any or all")
	flags.StringVar(&f.members, "members", "", "comma-separated member ids, or none")
	flags.StringVar(&f.labels, "labels", "", "comma-separated label ids, or none")
	flags.StringVar(&f.due, "due", "", "comma-separated due buckets")
	flags.StringVar(&f.status, "status", "", "comma-separated statuses")
	flags.StringVar(&f.workspace, "workspace", "", "workspace slug")
	flags.IntVar(&f.limit, "limit", 0, "page size")
	flags.StringVar(&f.cursor, "cursor", "", "cursor from a previous page")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}

func (f *searchFlags) values(query string) url.Values {
	v := url.Values{}
	v.Set(request.ParamQuery, query)
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set(request.ParamType, f.entity)
	set(request.ParamMatch, f.match)
	set(request.ParamMembers, f.members)
	set(request.ParamLabels, f.labels)
	set(request.ParamDue, f.due)
	set(request.ParamStatus, f.status)
	set(request.ParamWorkspace, f.workspace)
	set(request.ParamCursor, f.cursor)
	if f.limit != 0 {
		v.Set(request.ParamLimit, strconv.Itoa(f.limit))
	}
	return v
}
