package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/glider/highscore"
)

func TestRenderScores(t *testing.T) {
	runs := []highscore.Run{
		{Level: "meadow.json", Score: 150, Time: 61500 * time.Millisecond, Deaths: 2, CreatedAt: time.Now()},
	}
	out := renderScores(highscore.Record{Score: 150, Time: 61500}, true, "Recent runs", runs)

	assert.Contains(t, out, "01:01.500")
	assert.Contains(t, out, "score 150")
	assert.Contains(t, out, "meadow.json")
}

func TestRenderScoresEmpty(t *testing.T) {
	out := renderScores(highscore.Record{}, false, "Recent runs", nil)

	assert.Contains(t, out, "no record yet")
	assert.Contains(t, out, "no runs recorded")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00.000", formatElapsed(0))
	assert.Equal(t, "02:05.042", formatElapsed(2*time.Minute+5*time.Second+42*time.Millisecond))
}
