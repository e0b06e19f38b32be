package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"SP": "R7"}
	b := map[string]string{"LR": "R6", "STACK_TOP": "0xf4"}

	got := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"SP": "R7", "LR": "R6", "STACK_TOP": "0xf4"}, got)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := map[int]int{1: 1, 2: 2}
	b := map[int]int{3: 3}

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestIterSeq2Concat_Empty(t *testing.T) {
	assert := assert.New(t)

	got := maps.Collect(IterSeq2Concat[string, string]())
	assert.Empty(got)
}
