package kv

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Open selects a Store implementation from a DSN:
//
//	memory:                      volatile in-memory store
//	file:<dir>                   one JSON file per key in <dir>
//	badger:<dir>                 BadgerDB database in <dir>
//	sqlite:<path>                SQLite database file
//	postgres://... postgresql:// Postgres database
//	s3://<bucket>/<prefix>?region=&endpoint=&path_style=true
//
// A DSN without scheme is a file store folder.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scheme, rest, found := strings.Cut(dsn, ":")
	if !found {
		return NewFile(dsn)
	}
	switch scheme {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(rest)
	case "badger":
		return NewBadger(BadgerOptions{Dir: rest, Logger: logger})
	case "sqlite":
		return NewSQLite(ctx, rest)
	case "postgres", "postgresql":
		return NewPostgres(ctx, dsn)
	case "s3":
		cfg, err := parseS3DSN(dsn)
		if err != nil {
			return nil, err
		}
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("kv: unknown store %q in %q", scheme, dsn)
	}
}

func parseS3DSN(dsn string) (S3Config, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return S3Config{}, fmt.Errorf("kv: invalid s3 dsn %q: %w", dsn, err)
	}
	if u.Host == "" {
		return S3Config{}, fmt.Errorf("kv: s3 dsn %q has no bucket", dsn)
	}
	prefix := strings.TrimPrefix(u.Path, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	q := u.Query()
	return S3Config{
		Bucket:    u.Host,
		Prefix:    prefix,
		Region:    q.Get("region"),
		Endpoint:  q.Get("endpoint"),
		PathStyle: strings.EqualFold(q.Get("path_style"), "true"),
	}, nil
}
