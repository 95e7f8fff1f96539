package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/jask/rowedit/internal/ordered"
	"github.com/jask/rowedit/internal/service"
)

const reorderScript = `
seed: [A, B, C, D]
steps:
  - op: select
    index: 1
  - op: move
    from: 3
    to: 0
  - op: delete
    index: 1
  - op: add
    label: X
  - op: add
`

func editorFor(s *Script) *service.EditorService {
	return service.NewEditor(ordered.New(s.Seed...), nil, zerolog.Nop(), "new row")
}

func TestParseAndApply(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(reorderScript))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, s.Seed)
	require.Len(t, s.Steps, 5)

	var recorded []int
	res, err := Apply(editorFor(s), s, func(ev service.Event) error {
		recorded = append(recorded, ev.Seq)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"new row", "X", "D", "B", "C"}, res.Items)
	require.Equal(t, []int{1, 2, 3, 4, 5}, recorded)
	require.Equal(t, service.GestureMove, res.Events[1].Gesture)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(`
seed: [A, B, C]
steps:
  - op: move
    from: 0
    to: 2
  - op: delete
    index: 3
  - op: add
`))
	require.NoError(t, err)

	res, err := Apply(editorFor(s), s, nil)
	require.ErrorIs(t, err, ordered.ErrIndexOutOfRange)
	require.ErrorContains(t, err, "step 2 (delete)")
	require.Equal(t, []string{"B", "C", "A"}, res.Items)
	require.Len(t, res.Events, 1)
}

func TestApplyStopsWhenRecordFails(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader("seed: [A]\nsteps:\n  - op: add\n  - op: add\n"))
	require.NoError(t, err)

	res, err := Apply(editorFor(s), s, func(service.Event) error { return errors.New("journal closed") })
	require.ErrorContains(t, err, "step 1 (add): journal closed")
	require.Equal(t, []string{"new row", "A"}, res.Items)
}

func TestParseRejectsBadScripts(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown op":    "steps:\n  - op: shuffle\n",
		"missing op":    "steps:\n  - index: 1\n",
		"unknown field": "steps:\n  - op: add\n    colour: red\n",
		"not yaml":      "steps: [",
	}
	for name, doc := range cases {
		_, err := Parse(strings.NewReader(doc))
		require.Error(t, err, name)
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Nil(t, s.Seed)
	require.Empty(t, s.Steps)
}

func TestWriteTextGolden(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(reorderScript))
	require.NoError(t, err)
	res, err := Apply(editorFor(s), s, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, res))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "reorder", buf.Bytes())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	res := Result{
		Items:  []string{"B", "A"},
		Events: []service.Event{{Seq: 1, Gesture: service.GestureMove, Index: 0, To: 1, Item: "A"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var decoded struct {
		Items  []string `json:"items"`
		Events []struct {
			Seq     int    `json:"seq"`
			Gesture string `json:"gesture"`
			To      int    `json:"to"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, []string{"B", "A"}, decoded.Items)
	require.Equal(t, "move", decoded.Events[0].Gesture)
	require.Equal(t, 1, decoded.Events[0].To)
}
