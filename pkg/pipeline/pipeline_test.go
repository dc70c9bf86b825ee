package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonchae62/REU-Project/pkg/pipeline"
)

type trace struct{ seen []string }

func record(name string, err error) pipeline.Step[*trace] {
	return pipeline.StepFunc[*trace]{Label: name, Fn: func(t *trace) error {
		t.seen = append(t.seen, name)
		return err
	}}
}

func TestPipeline_Run(t *testing.T) {
	p := pipeline.New(record("clean", nil), record("decompose", nil)).Then(record("peaks", nil))

	tr := &trace{}
	require.NoError(t, p.Run(tr))
	assert.Equal(t, []string{"clean", "decompose", "peaks"}, tr.seen)
	assert.Equal(t, []string{"clean", "decompose", "peaks"}, p.Names())
}

func TestPipeline_StopsAtFailure(t *testing.T) {
	boom := errors.New("boom")
	p := pipeline.New(record("clean", nil), record("decompose", boom), record("peaks", nil))

	tr := &trace{}
	err := p.Run(tr)
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "decompose: boom")
	assert.Equal(t, []string{"clean", "decompose"}, tr.seen)
}
