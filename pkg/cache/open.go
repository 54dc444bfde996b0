package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the backend named by spec:
//
//	""  or "none"                   caching disabled
//	"redis://..." or "rediss://..."  [RedisCache]
//	"mongodb://..." or "mongodb+srv://..."  [MongoCache] with default names
//	"file:///dir" or "/dir"         [FileCache]
func Open(ctx context.Context, spec string) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch {
	case spec == "" || spec == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		c, err = NewRedisCache(ctx, spec)
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		c, err = NewMongoCache(ctx, spec, "", "")
	case strings.HasPrefix(spec, "file://"):
		c, err = NewFileCache(strings.TrimPrefix(spec, "file://"))
	case strings.Contains(spec, "://"):
		return nil, fmt.Errorf("unsupported cache backend %q", spec)
	default:
		c, err = NewFileCache(spec)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
