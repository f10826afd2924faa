package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestListQuery pins the listing statement: public listings restrict to
active rows and order by insertion (id).
*/
func TestListQuery(t *testing.T) {
	query := listQuery(Filter{})
	assert.Contains(t, query, "isactive = TRUE")
	assert.Contains(t, query, "ORDER BY id ASC LIMIT $1 OFFSET $2")

	admin := listQuery(Filter{IncludeInactive: true})
	assert.NotContains(t, admin, "isactive")
	assert.Contains(t, admin, "ORDER BY id ASC LIMIT $1 OFFSET $2")
}
