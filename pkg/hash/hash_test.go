package hash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Id          int64     `json:"id"`
	Name        string    `json:"name"`
	Memory      int       `json:"memory"`
	CollectedAt time.Time `json:"collected_at"`
}

func TestContentIgnoresMetaFields(t *testing.T) {
	a := record{Id: 1, Name: "web-01", Memory: 8192, CollectedAt: time.Now()}
	b := record{Id: 2, Name: "web-01", Memory: 8192, CollectedAt: time.Now().Add(time.Hour)}

	ha, err := Content(a)
	require.NoError(t, err)
	hb, err := Content(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestContentDetectsBusinessChange(t *testing.T) {
	a := record{Name: "web-01", Memory: 8192}
	b := record{Name: "web-01", Memory: 16384}

	ha, err := Content(a)
	require.NoError(t, err)
	hb, err := Content(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestContentIsStable(t *testing.T) {
	a := record{Name: "web-01", Memory: 8192}

	h1, err := Content(a)
	require.NoError(t, err)
	h2, err := Content(a)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}
