package denuncias

import "context"

// Source yields the complaint dataset the tracking flow searches.
type Source interface {
	Fetch(ctx context.Context) (*Dataset, error)
}

// StaticSource serves a fixed dataset. The embedded demonstration data and
// tests use it.
type StaticSource struct {
	ds *Dataset
}

// NewStaticSource wraps ds. A nil ds serves an empty dataset.
func NewStaticSource(ds *Dataset) *StaticSource {
	if ds == nil {
		ds = &Dataset{}
	}
	return &StaticSource{ds: ds}
}

// Fetch returns the wrapped dataset.
func (s *StaticSource) Fetch(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.ds, nil
}
