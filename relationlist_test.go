package tabular

import (
	"context"
	"html/template"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type staticRelation[T any] struct {
	records []T
	err     error
}

func (r staticRelation[T]) Exists(_ context.Context) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return len(r.records) > 0, nil
}

func (r staticRelation[T]) All(_ context.Context) ([]T, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.records, nil
}

func TestRelationListRender(t *testing.T) {
	ctx := context.Background()

	{
		column := NewRelationList(RelationListConfig[string]{})
		got, err := column.Render(ctx, staticRelation[string]{})
		require.NoError(t, err)
		require.Equal(t, template.HTML("-"), got)
	}
	{
		column := NewRelationList(RelationListConfig[string]{})
		got, err := column.Render(ctx, staticRelation[string]{records: []string{"A", "B", "C"}})
		require.NoError(t, err)
		require.Equal(t, template.HTML("A, B, C"), got)
	}
	{
		column := NewRelationList(RelationListConfig[string]{})
		got, err := column.Render(ctx, staticRelation[string]{records: []string{"<script>"}})
		require.NoError(t, err)
		require.Equal(t, template.HTML("&lt;script&gt;"), got)
	}
	{
		column := NewRelationList(RelationListConfig[string]{Separator: " | "})
		got, err := column.Render(ctx, staticRelation[string]{records: []string{"X", "Y"}})
		require.NoError(t, err)
		require.Equal(t, template.HTML("X | Y"), got)
	}
	{
		// The separator is escaped like the items, so it cannot inject markup.
		column := NewRelationList(RelationListConfig[string]{Separator: "<br>"})
		got, err := column.Render(ctx, staticRelation[string]{records: []string{"X", "Y"}})
		require.NoError(t, err)
		require.Equal(t, template.HTML("X&lt;br&gt;Y"), got)
	}
}

func TestRelationListFilter(t *testing.T) {
	ctx := context.Background()

	column := NewRelationList(RelationListConfig[string]{
		Filter: func(ctx context.Context, rel Relation[string]) ([]string, error) {
			records, err := rel.All(ctx)
			if err != nil {
				return nil, err
			}
			reversed := make([]string, 0, len(records))
			for i := len(records) - 1; i >= 0; i-- {
				reversed = append(reversed, records[i])
			}
			if len(reversed) > 2 {
				reversed = reversed[:2]
			}
			return reversed, nil
		},
	})
	got, err := column.Render(ctx, staticRelation[string]{records: []string{"A", "B", "C"}})
	require.NoError(t, err)
	require.Equal(t, template.HTML("C, B"), got)
}

func TestRelationListTransform(t *testing.T) {
	ctx := context.Background()

	column := NewRelationList(RelationListConfig[string]{
		Transform: func(record string) string {
			return record + "!"
		},
	})
	got, err := column.Render(ctx, staticRelation[string]{records: []string{"A", "B"}})
	require.NoError(t, err)
	require.Equal(t, template.HTML("A!, B!"), got)
}

func TestRelationListOrderableDefault(t *testing.T) {
	{
		column := NewRelationList(RelationListConfig[string]{})
		require.NotNil(t, column.Config().Orderable)
		require.False(t, column.Orderable())
	}
	{
		column := NewRelationList(RelationListConfig[string]{}, WithOrderable(true))
		require.True(t, column.Orderable())
	}
	{
		// Other column types keep the orderable-by-default behavior.
		column := NewText()
		require.Nil(t, column.Config().Orderable)
		require.True(t, column.Orderable())
	}
}

func TestRelationListErrors(t *testing.T) {
	ctx := context.Background()

	{
		column := NewRelationList(RelationListConfig[string]{})
		_, err := column.Render(ctx, "not a relation")
		require.ErrorContains(t, err, "is not a Relation")
	}
	{
		column := NewRelationList(RelationListConfig[string]{})
		_, err := column.Render(ctx, staticRelation[string]{err: errors.New("connection gone")})
		require.ErrorContains(t, err, "test relation emptiness")
	}
	{
		column := NewRelationList(RelationListConfig[string]{
			Filter: func(ctx context.Context, rel Relation[string]) ([]string, error) {
				return nil, errors.New("bad filter")
			},
		})
		_, err := column.Render(ctx, staticRelation[string]{records: []string{"A"}})
		require.ErrorContains(t, err, "filter relation")
	}
}
