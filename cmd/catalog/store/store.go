package store

import (
	"strings"
	"sync"
)

// Track is one catalog entry
type Track struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ReleaseYear int    `json:"release_year"`
	Genre       string `json:"genre"`
	// Duration in seconds
	Duration int `json:"duration"`
	Likes    int `json:"likes"`
}

// Store is a read-mostly in-memory track catalog. The dataset is seeded at
// construction; the only mutation is the like counter. Readers get copies,
// never pointers into the shared slice, so marshaling a response never races
// a concurrent AddLike.
type Store struct {
	mu     sync.RWMutex
	tracks []Track
}

// New creates a store with the given tracks
func New(tracks []Track) *Store {
	return &Store{tracks: tracks}
}

// NewSeeded creates a store with the default catalog
func NewSeeded() *Store {
	return New([]Track{
		{ID: 1, Title: "Dynamite", Artist: "BTS", Album: "BE", ReleaseYear: 2020, Genre: "K-pop", Duration: 199, Likes: 1000000},
		{ID: 2, Title: "Spring Day", Artist: "BTS", Album: "You Never Walk Alone", ReleaseYear: 2017, Genre: "K-pop", Duration: 255, Likes: 950000},
		{ID: 3, Title: "How You Like That", Artist: "BLACKPINK", Album: "THE ALBUM", ReleaseYear: 2020, Genre: "K-pop", Duration: 182, Likes: 890000},
		{ID: 4, Title: "Maria", Artist: "Hwasa", Album: "Maria", ReleaseYear: 2020, Genre: "K-pop", Duration: 195, Likes: 450000},
		{ID: 5, Title: "Celebrity", Artist: "IU", Album: "Celebrity", ReleaseYear: 2021, Genre: "K-pop", Duration: 195, Likes: 780000},
	})
}

// All returns a copy of every track
func (s *Store) All() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// ByID returns a copy of the track with the given id.
// The second return reports whether the track exists.
func (s *Store) ByID(id int64) (Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	track := s.findLocked(id)
	if track == nil {
		return Track{}, false
	}
	return *track, true
}

// ByGenre returns copies of all tracks of a genre, matched case-insensitively
func (s *Store) ByGenre(genre string) []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Track{}
	for _, track := range s.tracks {
		if strings.EqualFold(track.Genre, genre) {
			out = append(out, track)
		}
	}
	return out
}

// AddLike increments a track's like counter.
// Returns false if the track does not exist.
func (s *Store) AddLike(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	track := s.findLocked(id)
	if track == nil {
		return false
	}
	track.Likes++
	return true
}

func (s *Store) findLocked(id int64) *Track {
	for i := range s.tracks {
		if s.tracks[i].ID == id {
			return &s.tracks[i]
		}
	}
	return nil
}
