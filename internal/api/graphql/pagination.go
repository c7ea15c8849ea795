package graphql

import (
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/plumeworks/plume/pkg/apierr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageArgs is the decoded `first`/`after` pair of a connection field. The
// cursor is the id of the last node on the previous page.
type pageArgs struct {
	First int32
	After *uuid.UUID
}

func connectionArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"first": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: defaultPageSize,
			Description:  "Page size (default 20, max 100)",
		},
		"after": &graphql.ArgumentConfig{
			Type:        graphql.ID,
			Description: "Cursor of the last node of the previous page",
		},
	}
}

func parsePageArgs(args map[string]any) (pageArgs, error) {
	first := defaultPageSize
	if v, ok := args["first"].(int); ok && v > 0 {
		first = v
	}
	if first > maxPageSize {
		first = maxPageSize
	}

	page := pageArgs{First: int32(first)}
	if raw, ok := args["after"].(string); ok && raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return pageArgs{}, apierr.InvalidCursor()
		}
		page.After = &id
	}
	return page, nil
}

// trimPage consumes the extra row fetched beyond the page size; its
// presence is what decides hasNextPage.
func trimPage[T any](rows []T, first int32) ([]T, bool) {
	if int32(len(rows)) > first {
		return rows[:first], true
	}
	return rows, false
}

// connection shapes a page into the wire form the connection types expect.
func connection[T any](nodes []T, hasNext bool, total int64, nodeID func(T) uuid.UUID) map[string]any {
	edges := make([]any, len(nodes))
	pageInfo := map[string]any{"hasNextPage": hasNext}
	for i, n := range nodes {
		cursor := nodeID(n).String()
		edges[i] = map[string]any{"cursor": cursor, "node": n}
		if i == len(nodes)-1 {
			pageInfo["endCursor"] = cursor
		}
	}
	return map[string]any{
		"totalCount": total,
		"edges":      edges,
		"pageInfo":   pageInfo,
	}
}
