package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/internal/infrastructure/kvstore"
)

type Monitor struct {
	pg     *pgxpool.Pool
	redis  *redislib.Client
	store  *kvstore.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

// New builds a monitor. Any of the backends may be nil when the deployment
// does not use it.
func New(store *kvstore.Store, pg *pgxpool.Pool, redis *redislib.Client, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:       pg,
		redis:    redis,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	storeOK, tasks := m.checkStore()
	status := Status{
		Store:           storeOK,
		StoreTasks:      tasks,
		StoreOpenTx:     m.store.Stats().OpenTxN,
		StoreEnabled:    m.store != nil,
		PostgreSQL:      m.checkPostgres(),
		PostgresEnabled: m.pg != nil,
		Redis:           m.checkRedis(),
		RedisEnabled:    m.redis != nil,
		LastCheck:       time.Now(),
	}
	if !status.Healthy() {
		m.logger.Warn("dependencies unhealthy",
			zap.Bool("store", status.Store),
			zap.Bool("postgresql", status.PostgreSQL),
			zap.Bool("redis", status.Redis),
		)
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkPostgres() bool {
	if m.pg == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.pg.Ping(ctx) == nil
}

func (m *Monitor) checkRedis() bool {
	if m.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

func (m *Monitor) checkStore() (bool, int) {
	if m.store == nil {
		return false, 0
	}
	size, err := m.store.Size(kvstore.CollectionTasks)
	if err != nil {
		m.logger.Warn("store size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
