package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/lepinkainen/argus/internal/media"
	"github.com/lepinkainen/argus/internal/viewsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs the reader to completion and gathers every emitted batch.
func collect(t *testing.T, input string) []viewsync.Batch {
	t.Helper()
	reader := NewReader(strings.NewReader(input))

	done := make(chan error, 1)
	go func() { done <- reader.Run(context.Background()) }()

	var batches []viewsync.Batch
	for batch := range reader.Changes() {
		batches = append(batches, batch)
	}
	require.NoError(t, <-done)
	return batches
}

func TestReader_SingleItemLines(t *testing.T) {
	input := `{"id":"tile-1","title":"Arrival","year":"2016","person":"Denis Villeneuve","role":"crew"}
{"id":"tile-2","title":"Fargo"}
`
	batches := collect(t, input)
	require.Len(t, batches, 2)
	require.Len(t, batches[0], 1)

	desc, err := batches[0][0].Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "Arrival", desc.Title)
	assert.Equal(t, "2016", desc.Year)
	assert.Equal(t, "Denis Villeneuve", desc.Person)
	assert.Equal(t, media.RoleCrew, desc.Role)

	assert.Equal(t, "tile-2", batches[1][0].Key())
}

func TestReader_ArrayLineIsOneBatch(t *testing.T) {
	input := `[{"id":"a","title":"Arrival"},{"id":"b","title":"Fargo"},{"id":"c","title":"Dune"}]
`
	batches := collect(t, input)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 3)
}

func TestReader_SkipsBlankCommentAndMalformedLines(t *testing.T) {
	input := `# items captured 2024-03-01

{"id":"tile-1","title":"Arrival"}
{not json at all
[{"id":"x","title":
{"id":"tile-2","title":"Fargo"}
`
	batches := collect(t, input)
	require.Len(t, batches, 2)
	assert.Equal(t, "tile-1", batches[0][0].Key())
	assert.Equal(t, "tile-2", batches[1][0].Key())
}

func TestReader_EmptyArrayEmitsNothing(t *testing.T) {
	batches := collect(t, "[]\n")
	assert.Empty(t, batches)
}

func TestItem_KeyFallsBackToTitle(t *testing.T) {
	assert.Equal(t, "node-9", Item{ID: "node-9", Title: "Arrival"}.Key())
	assert.Equal(t, "Arrival", Item{Title: "Arrival"}.Key())
}

func TestItem_DescriptorRequiresTitle(t *testing.T) {
	_, err := Item{ID: "tile-1"}.Descriptor()
	assert.Error(t, err)
}
