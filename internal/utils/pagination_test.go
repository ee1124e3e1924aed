package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestGeneratePagination(t *testing.T) {
	assert.Nil(t, GeneratePagination(1, 0))
	assert.Nil(t, GeneratePagination(1, 1))

	p := GeneratePagination(1, 3)
	require.NotNil(t, p)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, 2, p.NextPage)
	assert.Equal(t, []Page{{1, false}, {2, true}, {3, true}}, p.Pages)

	p = GeneratePagination(10, 20)
	require.NotNil(t, p)
	assert.Equal(t, []Page{
		{1, true}, {0, false},
		{8, true}, {9, true}, {10, false}, {11, true}, {12, true},
		{0, false}, {20, true},
	}, p.Pages)
}
