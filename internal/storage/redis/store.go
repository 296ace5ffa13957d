package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
)

const opTimeout = 5 * time.Second

// Store keeps all zones in one Redis hash: field = zone id, value = the
// zone's rule list as a JSON array.
type Store struct {
	client *goredis.Client
	key    string
	addr   string
}

var _ storage.Provider = (*Store)(nil)

func New(opts *goredis.Options, key string) *Store {
	if key == "" {
		key = constants.DefaultRedisKey
	}
	return &Store{client: goredis.NewClient(opts), key: key, addr: opts.Addr}
}

// NewFromURL accepts redis://[:password@]host:port/db. password is used
// when the URL carries none.
func NewFromURL(rawURL, key, password string) (*Store, error) {
	opts, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if opts.Password == "" {
		opts.Password = password
	}
	return New(opts, key), nil
}

// NewWithAddr connects to addr without a URL.
func NewWithAddr(addr string, db int, password, key string) *Store {
	return New(&goredis.Options{Addr: addr, DB: db, Password: password}, key)
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (s *Store) ping() error {
	c, cancel := opContext()
	defer cancel()
	if err := s.client.Ping(c).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", s.addr, err)
	}
	return nil
}

// Init only checks connectivity; the hash is created on first save.
func (s *Store) Init() error {
	return s.ping()
}

func (s *Store) Load() error {
	return s.ping()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func decodeZone(data string) ([]models.AlarmRule, error) {
	var rules []models.AlarmRule
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return nil, fmt.Errorf("failed to parse zone: %w", err)
	}
	return rules, nil
}

func (s *Store) LoadZone(zoneID string) ([]models.AlarmRule, error) {
	c, cancel := opContext()
	defer cancel()

	data, err := s.client.HGet(c, s.key, zoneID).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read zone %s: %w", zoneID, err)
	}
	return decodeZone(data)
}

func writeZone(c context.Context, pipe goredis.Pipeliner, key, zoneID string, rules []models.AlarmRule) error {
	if len(rules) == 0 {
		pipe.HDel(c, key, zoneID)
		return nil
	}
	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to serialize zone %s: %w", zoneID, err)
	}
	pipe.HSet(c, key, zoneID, data)
	return nil
}

func (s *Store) SaveZone(zoneID string, rules []models.AlarmRule) error {
	if zoneID == "" {
		return storage.ErrZoneRequired
	}
	c, cancel := opContext()
	defer cancel()

	_, err := s.client.TxPipelined(c, func(pipe goredis.Pipeliner) error {
		return writeZone(c, pipe, s.key, zoneID, rules)
	})
	if err != nil {
		return fmt.Errorf("failed to write zone %s: %w", zoneID, err)
	}
	return nil
}

// RemoveRule watches the hash so a concurrent writer aborts the removal
// instead of being overwritten.
func (s *Store) RemoveRule(zoneID string, ruleID int64) error {
	c, cancel := opContext()
	defer cancel()

	return s.client.Watch(c, func(tx *goredis.Tx) error {
		data, err := tx.HGet(c, s.key, zoneID).Result()
		if errors.Is(err, goredis.Nil) {
			return fmt.Errorf("%w: %d in zone %s", storage.ErrRuleNotFound, ruleID, zoneID)
		}
		if err != nil {
			return fmt.Errorf("failed to read zone %s: %w", zoneID, err)
		}
		rules, err := decodeZone(data)
		if err != nil {
			return err
		}

		kept := make([]models.AlarmRule, 0, len(rules))
		for _, r := range rules {
			if r.ID != ruleID {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(rules) {
			return fmt.Errorf("%w: %d in zone %s", storage.ErrRuleNotFound, ruleID, zoneID)
		}

		_, err = tx.TxPipelined(c, func(pipe goredis.Pipeliner) error {
			return writeZone(c, pipe, s.key, zoneID, kept)
		})
		return err
	}, s.key)
}

func (s *Store) ListZones() ([]string, error) {
	c, cancel := opContext()
	defer cancel()

	zones, err := s.client.HKeys(c, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	sort.Strings(zones)
	return zones, nil
}

func (s *Store) GetConfigPath() string {
	return "redis://" + s.addr + "/" + s.key
}
