package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/trezcool/autolearn/core"
	"github.com/trezcool/autolearn/core/prompt"
)

const (
	keyPrefix    = "autolearn:templates:"
	allKey       = keyPrefix + "all"
	byTypePrefix = keyPrefix + "type:"

	defaultTTL = 10 * time.Minute
)

// NewRedisClient returns a client for the configured redis, or nil if no address is configured.
func NewRedisClient(conf *core.Config) *goredis.Client {
	if conf.Cache.RedisAddr == "" {
		return nil
	}
	return goredis.NewClient(&goredis.Options{
		Addr:        conf.Cache.RedisAddr,
		Password:    conf.Cache.RedisPassword,
		DB:          conf.Cache.RedisDB,
		DialTimeout: 5 * time.Second,
	})
}

// templateRepository is a read-through redis cache in front of a prompt.Repository.
// Redis failures are logged and the wrapped repository is used instead.
type templateRepository struct {
	repo   prompt.Repository
	rdb    *goredis.Client
	ttl    time.Duration
	logger core.Logger
}

var _ prompt.Repository = (*templateRepository)(nil) // interface compliance check

// NewTemplateRepository wraps repo with a cache. repo is returned as is when rdb is nil.
func NewTemplateRepository(repo prompt.Repository, rdb *goredis.Client, conf *core.Config, logger core.Logger) prompt.Repository {
	if rdb == nil {
		return repo
	}
	ttl := conf.Cache.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &templateRepository{repo: repo, rdb: rdb, ttl: ttl, logger: logger}
}

// get decodes the cached value of key into dest and reports whether it was found.
func (c *templateRepository) get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("template cache read failed", errors.Wrap(err, key))
		}
		return false
	}
	if err = json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("template cache decode failed", errors.Wrap(err, key))
		return false
	}
	return true
}

func (c *templateRepository) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("template cache encode failed", errors.Wrap(err, key))
		return
	}
	if err = c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("template cache write failed", errors.Wrap(err, key))
	}
}

func (c *templateRepository) QueryTemplates(ctx context.Context, exec ...core.DBExecutor) ([]prompt.Template, error) {
	var templates []prompt.Template
	if c.get(ctx, allKey, &templates) {
		return templates, nil
	}
	templates, err := c.repo.QueryTemplates(ctx, exec...)
	if err != nil {
		return nil, err
	}
	c.set(ctx, allKey, templates)
	return templates, nil
}

func (c *templateRepository) GetTemplateByType(ctx context.Context, templateType string, exec ...core.DBExecutor) (prompt.Template, error) {
	key := byTypePrefix + templateType
	var t prompt.Template
	if c.get(ctx, key, &t) {
		return t, nil
	}
	t, err := c.repo.GetTemplateByType(ctx, templateType, exec...)
	if err != nil {
		return prompt.Template{}, err
	}
	c.set(ctx, key, t)
	return t, nil
}

// UpsertTemplate writes through and drops every cached template.
func (c *templateRepository) UpsertTemplate(ctx context.Context, t prompt.Template, exec ...core.DBExecutor) (prompt.Template, error) {
	saved, err := c.repo.UpsertTemplate(ctx, t, exec...)
	if err != nil {
		return prompt.Template{}, err
	}
	c.invalidate(ctx)
	return saved, nil
}

func (c *templateRepository) invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("template cache scan failed", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("template cache invalidation failed", err)
	}
}
