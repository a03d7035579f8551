package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCriterion(t *testing.T) {
	for _, c := range Criteria {
		got, err := ParseCriterion(string(c))
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCriterion("alphabetical")
	assert.Error(t, err)

	_, err = ParseCriterion("")
	assert.Error(t, err)
}
