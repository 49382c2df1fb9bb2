package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededCatalog(t *testing.T) {
	s := NewSeeded()

	tracks := s.All()
	require.Len(t, tracks, 5)
	assert.Equal(t, "Dynamite", tracks[0].Title)
	assert.Equal(t, "BTS", tracks[0].Artist)
}

func TestByID(t *testing.T) {
	s := NewSeeded()

	track, ok := s.ByID(3)
	require.True(t, ok)
	assert.Equal(t, "How You Like That", track.Title)

	_, ok = s.ByID(99)
	assert.False(t, ok)
}

func TestByGenreCaseInsensitive(t *testing.T) {
	s := NewSeeded()

	assert.Len(t, s.ByGenre("K-pop"), 5)
	assert.Len(t, s.ByGenre("k-POP"), 5)

	// Unknown genre yields an empty list, not null
	none := s.ByGenre("jazz")
	require.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAddLike(t *testing.T) {
	s := NewSeeded()

	before, ok := s.ByID(1)
	require.True(t, ok)
	require.True(t, s.AddLike(1))

	after, ok := s.ByID(1)
	require.True(t, ok)
	assert.Equal(t, before.Likes+1, after.Likes)

	assert.False(t, s.AddLike(99))
}

func TestReadsAreCopies(t *testing.T) {
	s := NewSeeded()

	// Mutating returned values must not touch the store
	track, ok := s.ByID(1)
	require.True(t, ok)
	track.Likes = 0

	all := s.All()
	all[0].Likes = 0

	kept, ok := s.ByID(1)
	require.True(t, ok)
	assert.Equal(t, 1000000, kept.Likes)
}

func TestConcurrentLikesAndReads(t *testing.T) {
	s := NewSeeded()

	// Run under -race: readers marshal-style reads while likes land
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddLike(1)
		}()
		go func() {
			defer wg.Done()
			if track, ok := s.ByID(1); ok {
				_ = track.Likes
			}
			for _, track := range s.All() {
				_ = track.Likes
			}
			_ = s.ByGenre("K-pop")
		}()
	}
	wg.Wait()

	track, ok := s.ByID(1)
	require.True(t, ok)
	assert.Equal(t, 1000050, track.Likes)
}
