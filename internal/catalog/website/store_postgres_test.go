package website

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uilove/uilove/pkg/pointer"
)

/*
TestAppendFilters_Defaults verifies that an empty filter only narrows to
active rows and binds no arguments.
*/
func TestAppendFilters_Defaults(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("WHERE 1=1")

	args := appendFilters(&builder, nil, Filter{})

	assert.Equal(t, "WHERE 1=1 AND w.isactive = TRUE", builder.String())
	assert.Empty(t, args)
}

/*
TestAppendFilters_IncludeInactive verifies admin reads skip the visibility
predicate entirely.
*/
func TestAppendFilters_IncludeInactive(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("WHERE 1=1")

	args := appendFilters(&builder, nil, Filter{IncludeInactive: true})

	assert.Equal(t, "WHERE 1=1", builder.String())
	assert.Empty(t, args)
}

/*
TestAppendFilters_Composed verifies AND-composition, positional argument
numbering, and the shared placeholder for the two ILIKE branches.
*/
func TestAppendFilters_Composed(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("WHERE 1=1")

	filter := Filter{
		Featured:   pointer.To(true),
		CategoryID: pointer.To(int64(7)),
		Query:      "dark",
	}
	args := appendFilters(&builder, nil, filter)

	sql := builder.String()
	assert.Contains(t, sql, "w.isactive = TRUE")
	assert.Contains(t, sql, "w.isfeatured = $1")
	assert.Contains(t, sql, "j.categoryid = $2")
	assert.Contains(t, sql, "(w.title ILIKE $3 OR w.description ILIKE $3)")

	assert.Equal(t, []any{true, int64(7), "%dark%"}, args)
}

/*
TestAppendFilters_JunctionPredicates verifies each taxonomy filter targets
its own junction table via EXISTS.
*/
func TestAppendFilters_JunctionPredicates(t *testing.T) {
	var builder strings.Builder

	filter := Filter{
		StyleID:      pointer.To(int64(3)),
		CollectionID: pointer.To(int64(9)),
		PlatformID:   pointer.To(int64(2)),
	}
	args := appendFilters(&builder, nil, filter)

	sql := builder.String()
	assert.Contains(t, sql, "w.platformid = $1")
	assert.Contains(t, sql, "FROM catalog.websitestyle j")
	assert.Contains(t, sql, "j.styleid = $2")
	assert.Contains(t, sql, "FROM catalog.websitecollection j")
	assert.Contains(t, sql, "j.collectionid = $3")
	assert.Len(t, args, 3)
}

/*
TestOrderClause verifies each sort keyword produces a deterministic order
with an id tiebreak.
*/
func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{SortLatest, " ORDER BY w.createdat DESC, w.id DESC"},
		{SortPopular, " ORDER BY w.viewcount DESC, w.id DESC"},
		{SortTitle, " ORDER BY w.title ASC, w.id DESC"},
		{"", " ORDER BY w.createdat DESC, w.id DESC"},
		{"bogus", " ORDER BY w.createdat DESC, w.id DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, orderClause(tt.sort))
	}
}
