package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestListQuery pins the listing statement: platforms have no visibility
flag and order by insertion (id).
*/
func TestListQuery(t *testing.T) {
	assert.Contains(t, listQuery(), "ORDER BY id ASC LIMIT $1 OFFSET $2")
}
