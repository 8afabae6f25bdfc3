// Package capture persists rendered frames. Frames travel as wire-encoded
// blobs, so anything stored here can be pasted back into a live buffer
// with compose.DrawPackedBuffer or restored wholesale via wire.DecodeFrame.
package capture

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/cellframe/cell"
	"github.com/framegrace/cellframe/wire"
)

// ErrNotFound is returned when a requested frame does not exist.
var ErrNotFound = errors.New("capture: frame not found")

// Frame is one stored capture.
type Frame struct {
	ID         int64
	CapturedAt time.Time
	Width      int
	Height     int
	Data       []byte // wire frame container
}

// Restore decodes the stored blob back into a buffer.
func (f *Frame) Restore() (*cell.Buffer, error) {
	return wire.DecodeFrame(f.Data)
}

// Store saves and retrieves captured frames.
type Store interface {
	// Save queues the buffer for persistence. Writes are batched; call
	// Flush to make queued frames durable and visible to reads.
	Save(buf *cell.Buffer) error

	// Latest returns the most recently captured frame.
	Latest() (*Frame, error)

	// Frame fetches one capture by id.
	Frame(id int64) (*Frame, error)

	// List returns up to limit captures, newest first, without blob data.
	List(limit int) ([]Frame, error)

	// Flush blocks until every queued frame is written.
	Flush() error

	// Close flushes pending writes and closes the database.
	Close() error
}

// Config tunes the async writer.
type Config struct {
	Path string // SQLite database path

	// BatchSize is how many frames accumulate before a write. Default 8.
	BatchSize int

	// BatchTimeout flushes a partial batch after this long. Default 500ms.
	BatchTimeout time.Duration

	// ChannelBuffer sizes the async queue. Default 64.
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults for the given path.
func DefaultConfig(path string) Config {
	return Config{
		Path:          path,
		BatchSize:     8,
		BatchTimeout:  500 * time.Millisecond,
		ChannelBuffer: 64,
	}
}

type pendingFrame struct {
	capturedAt time.Time
	width      int
	height     int
	data       []byte
}

// SQLiteStore is the database-backed Store. Frames are queued on a channel
// and written in transactions by a single writer goroutine, so Save stays
// off the render path's critical section.
type SQLiteStore struct {
	db  *sql.DB
	cfg Config

	queue   chan pendingFrame
	flushCh chan chan error
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// Open creates or opens a capture database with default tuning.
func Open(path string) (*SQLiteStore, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig creates or opens a capture database.
func OpenWithConfig(cfg Config) (*SQLiteStore, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 8
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 500 * time.Millisecond
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = 64
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("capture: open database: %w", err)
	}
	// Single writer goroutine; serialize access.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("capture: %s: %w", pragma, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS frames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		captured_at INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		data BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_frames_captured_at ON frames(captured_at);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("capture: create schema: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		cfg:     cfg,
		queue:   make(chan pendingFrame, cfg.ChannelBuffer),
		flushCh: make(chan chan error),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.writer()
	return s, nil
}

func (s *SQLiteStore) Save(buf *cell.Buffer) error {
	select {
	case <-s.done:
		return errors.New("capture: store is closed")
	default:
	}
	s.queue <- pendingFrame{
		capturedAt: time.Now(),
		width:      buf.Width(),
		height:     buf.Height(),
		data:       wire.EncodeFrame(buf),
	}
	return nil
}

// writer batches queued frames into transactions, flushing on batch size,
// timeout, or an explicit Flush request.
func (s *SQLiteStore) writer() {
	defer s.wg.Done()

	batch := make([]pendingFrame, 0, s.cfg.BatchSize)
	timer := time.NewTimer(s.cfg.BatchTimeout)
	defer timer.Stop()

	writeBatch := func() error {
		if len(batch) == 0 {
			return nil
		}
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		stmt, err := tx.Prepare(
			"INSERT INTO frames (captured_at, width, height, data) VALUES (?, ?, ?, ?)")
		if err != nil {
			tx.Rollback()
			return err
		}
		for _, f := range batch {
			if _, err := stmt.Exec(f.capturedAt.UnixNano(), f.width, f.height, f.data); err != nil {
				stmt.Close()
				tx.Rollback()
				return err
			}
		}
		stmt.Close()
		if err := tx.Commit(); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case f := <-s.queue:
			batch = append(batch, f)
			if len(batch) >= s.cfg.BatchSize {
				if err := writeBatch(); err != nil {
					log.Printf("Capture: batch write failed: %v", err)
				}
				timer.Reset(s.cfg.BatchTimeout)
			}
		case <-timer.C:
			if err := writeBatch(); err != nil {
				log.Printf("Capture: batch write failed: %v", err)
			}
			timer.Reset(s.cfg.BatchTimeout)
		case reply := <-s.flushCh:
			// Drain anything already queued before acknowledging.
			for {
				select {
				case f := <-s.queue:
					batch = append(batch, f)
					continue
				default:
				}
				break
			}
			reply <- writeBatch()
		case <-s.done:
			for {
				select {
				case f := <-s.queue:
					batch = append(batch, f)
					continue
				default:
				}
				break
			}
			if err := writeBatch(); err != nil {
				log.Printf("Capture: final batch write failed: %v", err)
			}
			return
		}
	}
}

func (s *SQLiteStore) Flush() error {
	reply := make(chan error, 1)
	select {
	case s.flushCh <- reply:
		return <-reply
	case <-s.done:
		return nil
	}
}

func (s *SQLiteStore) Latest() (*Frame, error) {
	row := s.db.QueryRow(
		"SELECT id, captured_at, width, height, data FROM frames ORDER BY id DESC LIMIT 1")
	return scanFrame(row)
}

func (s *SQLiteStore) Frame(id int64) (*Frame, error) {
	row := s.db.QueryRow(
		"SELECT id, captured_at, width, height, data FROM frames WHERE id = ?", id)
	return scanFrame(row)
}

func scanFrame(row *sql.Row) (*Frame, error) {
	var f Frame
	var ns int64
	err := row.Scan(&f.ID, &ns, &f.Width, &f.Height, &f.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("capture: scan frame: %w", err)
	}
	f.CapturedAt = time.Unix(0, ns)
	return &f, nil
}

func (s *SQLiteStore) List(limit int) ([]Frame, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		"SELECT id, captured_at, width, height FROM frames ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("capture: list frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var ns int64
		if err := rows.Scan(&f.ID, &ns, &f.Width, &f.Height); err != nil {
			return nil, fmt.Errorf("capture: scan frame row: %w", err)
		}
		f.CapturedAt = time.Unix(0, ns)
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
