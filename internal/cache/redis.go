package cache

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultKeyPrefix = "cinetrack:"

// RedisStore talks to a Redis server over a single multiplexed connection
// using the RESP protocol. It keeps the dependency surface small while
// supporting everything the cache and rate limiter need.
type RedisStore struct {
	addr     string
	password string
	db       int
	prefix   string

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// RedisConfig holds connection options for NewRedisStore.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	store := &RedisStore{
		addr:     cfg.Addr,
		password: cfg.Password,
		db:       cfg.DB,
		prefix:   prefix,
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.connectLocked(ctx); err != nil {
		return nil, err
	}
	if _, err := store.doLocked(ctx, "PING"); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return store, nil
}

func (s *RedisStore) connectLocked(ctx context.Context) error {
	dialer := net.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("dial redis: %w", err)
	}

	s.conn = conn
	s.reader = bufio.NewReader(conn)
	s.writer = bufio.NewWriter(conn)

	if s.password != "" {
		if _, err := s.doLocked(ctx, "AUTH", s.password); err != nil {
			s.closeLocked()
			return fmt.Errorf("redis auth: %w", err)
		}
	}
	if s.db != 0 {
		if _, err := s.doLocked(ctx, "SELECT", strconv.Itoa(s.db)); err != nil {
			s.closeLocked()
			return fmt.Errorf("redis select: %w", err)
		}
	}

	return nil
}

func (s *RedisStore) closeLocked() {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = nil
	s.reader = nil
	s.writer = nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

// do sends a command and reads one reply, reconnecting once if the
// connection has gone away since the previous call.
func (s *RedisStore) do(ctx context.Context, args ...string) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		if err := s.connectLocked(ctx); err != nil {
			return nil, err
		}
	}

	reply, err := s.doLocked(ctx, args...)
	if err != nil && !isRedisError(err) {
		s.closeLocked()
		if cerr := s.connectLocked(ctx); cerr != nil {
			return nil, err
		}
		return s.doLocked(ctx, args...)
	}
	return reply, err
}

func (s *RedisStore) doLocked(ctx context.Context, args ...string) (interface{}, error) {
	deadline := time.Now().Add(5 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if err := writeCommand(s.writer, args); err != nil {
		return nil, err
	}
	if err := s.writer.Flush(); err != nil {
		return nil, err
	}

	return readReply(s.reader)
}

func writeCommand(w *bufio.Writer, args []string) error {
	if _, err := fmt.Fprintf(w, "*%d\r\n", len(args)); err != nil {
		return err
	}
	for _, arg := range args {
		if _, err := fmt.Fprintf(w, "$%d\r\n%s\r\n", len(arg), arg); err != nil {
			return err
		}
	}
	return nil
}

type redisError string

func (e redisError) Error() string { return string(e) }

func isRedisError(err error) bool {
	var re redisError
	return errors.As(err, &re)
}

func readReply(r *bufio.Reader) (interface{}, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if line == "" {
		return nil, errors.New("empty redis reply")
	}

	switch line[0] {
	case '+':
		return line[1:], nil
	case '-':
		return nil, redisError(line[1:])
	case ':':
		return strconv.ParseInt(line[1:], 10, 64)
	case '$':
		length, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, nil
		}
		buf := make([]byte, length+2)
		if _, err := readFull(r, buf); err != nil {
			return nil, err
		}
		return buf[:length], nil
	case '*':
		count, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, nil
		}
		items := make([]interface{}, count)
		for i := range items {
			item, err := readReply(r)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected redis reply %q", line)
	}
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	reply, err := s.do(ctx, "GET", s.key(key))
	if err != nil {
		return nil, false, err
	}
	if reply == nil {
		return nil, false, nil
	}
	value, ok := reply.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("unexpected GET reply type %T", reply)
	}
	return value, true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := []string{"SET", s.key(key), string(value)}
	if ttl > 0 {
		args = append(args, "PX", formatMillis(ttl))
	}
	_, err := s.do(ctx, args...)
	return err
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := s.do(ctx, "DEL", s.key(key))
	return err
}

// DeleteMatching implements Store using SCAN so large keyspaces are walked
// incrementally rather than blocking the server.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) (int64, error) {
	return s.deletePattern(ctx, s.key(pattern))
}

// Clear implements Store. Only keys under this store's prefix are removed.
func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.deletePattern(ctx, s.prefix+"*")
	return err
}

func (s *RedisStore) deletePattern(ctx context.Context, pattern string) (int64, error) {
	var removed int64
	cursor := "0"
	for {
		reply, err := s.do(ctx, "SCAN", cursor, "MATCH", pattern, "COUNT", "100")
		if err != nil {
			return removed, err
		}
		parts, ok := reply.([]interface{})
		if !ok || len(parts) != 2 {
			return removed, fmt.Errorf("unexpected SCAN reply %T", reply)
		}

		next, ok := parts[0].([]byte)
		if !ok {
			return removed, fmt.Errorf("unexpected SCAN cursor %T", parts[0])
		}
		keys, ok := parts[1].([]interface{})
		if !ok {
			return removed, fmt.Errorf("unexpected SCAN keys %T", parts[1])
		}

		if len(keys) > 0 {
			args := make([]string, 0, len(keys)+1)
			args = append(args, "DEL")
			for _, k := range keys {
				kb, ok := k.([]byte)
				if !ok {
					return removed, fmt.Errorf("unexpected SCAN key %T", k)
				}
				args = append(args, string(kb))
			}
			delReply, err := s.do(ctx, args...)
			if err != nil {
				return removed, err
			}
			if n, ok := delReply.(int64); ok {
				removed += n
			}
		}

		cursor = string(next)
		if cursor == "0" {
			return removed, nil
		}
	}
}

// IncrementWithTTL implements Store. The expiry is attached only when the
// counter is first created so a window is not extended by later hits.
func (s *RedisStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	reply, err := s.do(ctx, "INCR", s.key(key))
	if err != nil {
		return 0, err
	}
	count, ok := reply.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected INCR reply type %T", reply)
	}

	if count == 1 && ttl > 0 {
		if _, err := s.do(ctx, "PEXPIRE", s.key(key), formatMillis(ttl)); err != nil {
			return count, err
		}
	}

	return count, nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.conn != nil {
		err = s.conn.Close()
	}
	s.conn = nil
	s.reader = nil
	s.writer = nil
	return err
}

func formatMillis(d time.Duration) string {
	millis := d.Milliseconds()
	if millis < 1 {
		millis = 1
	}
	return strconv.FormatInt(millis, 10)
}
