// Package service answers display lookups: the dotted name of a wrapped node
// and the verified primary name of an address. Answers are read through a
// cache and concurrent loads of one key are collapsed.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/singleflight"

	"bicns/internal/metadata/cache"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

const DefaultTTL = time.Minute

type Wrapper interface {
	Names(ctx context.Context, node common.Hash) ([]byte, error)
}

type Resolver interface {
	Name(ctx context.Context, node common.Hash) (string, error)
	Addr(ctx context.Context, node common.Hash) (common.Address, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	wrapper  Wrapper
	resolver Resolver
	cache    Cache
	ttl      time.Duration
	group    singleflight.Group
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache replaces the process-local cache.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func New(wrapper Wrapper, resolver Resolver, opts ...Option) *Service {
	s := &Service{
		wrapper:  wrapper,
		resolver: resolver,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewLocal(s.ttl, cache.DefaultCleanupInterval)
	}
	return s
}

// Name is the dotted form of the name the Wrapper recorded for node.
func (s *Service) Name(ctx context.Context, node common.Hash) (string, error) {
	return s.readThrough(ctx, "name:"+node.Hex(), func(ctx context.Context) (string, error) {
		encoded, err := s.wrapper.Names(ctx, node)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load name")
		}
		if len(encoded) == 0 {
			return "", dErrors.New(dErrors.CodeNotFound, "no name recorded for node")
		}
		name, err := domain.DecodeName(encoded)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "stored name is malformed")
		}
		return name, nil
	})
}

// PrimaryName is the name addr's reverse record points at, provided that name
// resolves back to addr. A cached answer is indexed under both nodes it was
// derived from so a records change on either one evicts it.
func (s *Service) PrimaryName(ctx context.Context, addr common.Address) (string, error) {
	return s.readThrough(ctx, primaryKey(addr), func(ctx context.Context) (string, error) {
		reverse := domain.ReverseNode(addr)
		name, err := s.resolver.Name(ctx, reverse)
		if err != nil {
			return "", err
		}
		if name == "" {
			return "", dErrors.New(dErrors.CodeNotFound, "no reverse record")
		}
		forward := domain.Namehash(name)
		resolved, err := s.resolver.Addr(ctx, forward)
		if err != nil {
			return "", err
		}
		if resolved != addr {
			return "", dErrors.Newf(dErrors.CodeNotFound, "%s does not resolve to %s", name, addr.Hex())
		}
		for _, node := range []common.Hash{reverse, forward} {
			if err := s.cache.Set(ctx, dependentKey(node), addr.Hex(), s.ttl); err != nil {
				s.warn(ctx, "metadata cache write failed", "key", dependentKey(node), "error", err)
			}
		}
		return name, nil
	})
}

// Invalidator evicts cached primary names when records they were derived
// from change. Give it the cache the Service reads through.
type Invalidator struct {
	cache  Cache
	logger *slog.Logger
}

func NewInvalidator(c Cache, logger *slog.Logger) *Invalidator {
	return &Invalidator{cache: c, logger: logger}
}

// RecordsChanged drops the primary name that depends on node, if one is cached.
func (i *Invalidator) RecordsChanged(ctx context.Context, node common.Hash) {
	key := dependentKey(node)
	addr, found, err := i.cache.Get(ctx, key)
	if err != nil {
		i.warn(ctx, "metadata cache read failed", "key", key, "error", err)
		return
	}
	if !found {
		return
	}
	if err := i.cache.Delete(ctx, "primary:"+addr, key); err != nil {
		i.warn(ctx, "metadata cache eviction failed", "key", key, "error", err)
	}
}

func (i *Invalidator) warn(ctx context.Context, msg string, attributes ...any) {
	if i.logger == nil {
		return
	}
	args := append(attributes, "request_id", requestcontext.RequestID(ctx))
	i.logger.WarnContext(ctx, msg, args...)
}

func primaryKey(addr common.Address) string {
	return "primary:" + addr.Hex()
}

func dependentKey(node common.Hash) string {
	return "depends:" + node.Hex()
}

// readThrough serves key from the cache, loading and storing it on a miss.
// Cache failures degrade to a direct load. Errors are not cached.
func (s *Service) readThrough(ctx context.Context, key string, load func(context.Context) (string, error)) (string, error) {
	if v, found, err := s.cache.Get(ctx, key); err != nil {
		s.warn(ctx, "metadata cache read failed", "key", key, "error", err)
	} else if found {
		return v, nil
	}

	// the load outlives whichever caller started it
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		value, err := load(loadCtx)
		if err != nil {
			return "", err
		}
		if err := s.cache.Set(loadCtx, key, value, s.ttl); err != nil {
			s.warn(ctx, "metadata cache write failed", "key", key, "error", err)
		}
		return value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) warn(ctx context.Context, msg string, attributes ...any) {
	if s.logger == nil {
		return
	}
	args := append(attributes, "request_id", requestcontext.RequestID(ctx))
	s.logger.WarnContext(ctx, msg, args...)
}
