package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uilove/uilove/pkg/query"
)

func TestIntSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, query.IntSlice([]string{"1", "2", "3"}))
	assert.Equal(t, []int{5}, query.IntSlice([]string{"x", "5", ""}))
	assert.Nil(t, query.IntSlice(nil))
}

func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, query.StringSlice("a, b"))
	assert.Equal(t, []string{"https://app.uilove.co"}, query.StringSlice("https://app.uilove.co,"))
	assert.Nil(t, query.StringSlice(""))
	assert.Nil(t, query.StringSlice(" , "))
}
