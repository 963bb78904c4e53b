package monitor

import "time"

// Status is the last dependency probe. Backends that are not configured
// are reported as disabled and do not count against health.
type Status struct {
	Store           bool      `json:"store"`
	StoreTasks      int       `json:"store_tasks"`
	StoreOpenTx     int       `json:"store_open_tx"`
	StoreEnabled    bool      `json:"store_enabled"`
	PostgreSQL      bool      `json:"postgresql"`
	PostgresEnabled bool      `json:"postgresql_enabled"`
	Redis           bool      `json:"redis"`
	RedisEnabled    bool      `json:"redis_enabled"`
	LastCheck       time.Time `json:"last_check"`
}

func (s Status) Healthy() bool {
	if s.StoreEnabled && !s.Store {
		return false
	}
	if s.PostgresEnabled && !s.PostgreSQL {
		return false
	}
	if s.RedisEnabled && !s.Redis {
		return false
	}
	return !s.LastCheck.IsZero()
}
