// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package enumerable

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4, 5}, even))
	assert.Equal(t, []int{}, Filter([]int{1, 3}, even))
	assert.Equal(t, []int{}, Filter(nil, even))
}

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Empty(t, Map([]int{}, strconv.Itoa))
}

func TestReduce(t *testing.T) {
	sum := func(acc, n int) int { return acc + n }
	assert.Equal(t, 10, Reduce([]int{1, 2, 3, 4}, 0, sum))
	assert.Equal(t, 7, Reduce(nil, 7, sum))

	// left to right
	concat := func(acc string, n int) string { return acc + strconv.Itoa(n) }
	assert.Equal(t, "x123", Reduce([]int{1, 2, 3}, "x", concat))
}
