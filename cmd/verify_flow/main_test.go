package main

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/decker502/valentine/pkg/config"
	"github.com/decker502/valentine/pkg/flow"
	"github.com/decker502/valentine/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlay_FullSession(t *testing.T) {
	content, err := config.LoadContent("../../data/content.yaml")
	require.NoError(t, err)
	c := flow.NewController(content, config.DefaultGameplay(), rand.New(rand.NewSource(42)), nil)
	defer c.Close()

	var out bytes.Buffer
	stages, err := play(c, view.DefaultLayout(config.DefaultGameplay()), 5, &out)
	require.NoError(t, err, out.String())
	require.NoError(t, checkStages(stages))

	text := out.String()
	assert.Equal(t, 5, strings.Count(text, "caught heart"))
	assert.Equal(t, 14, strings.Count(text, "[reasons]"))
	assert.Contains(t, text, `declined "Think again 😂" -> "No"`)
	assert.Contains(t, text, "Silverback Hotel, Mbarara")
	assert.Contains(t, text, "restarted, score=0 reasonIndex=0 noIndex=0")
}

func TestCheckStages(t *testing.T) {
	assert.Error(t, checkStages([]flow.Stage{flow.StageWelcome}))
	assert.Error(t, checkStages([]flow.Stage{
		flow.StageWelcome, flow.StageGame, flow.StageQuestion, flow.StageReasons,
		flow.StageYes, flow.StageFinal, flow.StageWelcome,
	}))
}
