package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"inkserie-app/internal/log"

	"gorm.io/gorm"
)

// ErrNotFound is returned by Get when no document matches the id.
var ErrNotFound = errors.New("document not found")

// WriteError carries a failed non-blocking write to the process-wide
// error channel. Async failures are never dropped silently: either a
// consumer reads Errors(), or Drain logs every one of them.
type WriteError struct {
	Op    string
	Model string
	ID    string
	Err   error
}

type ListOptions struct {
	Filter map[string]interface{}
	Order  string
	Limit  int
}

type job struct {
	op    string
	model string
	id    string
	run   func(db *gorm.DB) error
}

type Accessor struct {
	db     *gorm.DB
	queue  chan job
	errs   chan WriteError
	failed atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

func New(db *gorm.DB) *Accessor {
	a := &Accessor{
		db:    db,
		queue: make(chan job, 256),
		errs:  make(chan WriteError, 64),
		done:  make(chan struct{}),
	}
	go a.writer()
	return a
}

// ---------- blocking reads/writes ----------

func (a *Accessor) Get(ctx context.Context, dest interface{}, id string) error {
	err := a.db.WithContext(ctx).First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (a *Accessor) List(ctx context.Context, dest interface{}, opts ListOptions) error {
	q := a.db.WithContext(ctx)
	for field, value := range opts.Filter {
		q = q.Where(field+" = ?", value)
	}
	if opts.Order != "" {
		q = q.Order(opts.Order)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	return q.Find(dest).Error
}

func (a *Accessor) Create(ctx context.Context, value interface{}) error {
	return a.db.WithContext(ctx).Create(value).Error
}

func (a *Accessor) Update(ctx context.Context, model interface{}, id string, patch map[string]interface{}) error {
	return a.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(patch).Error
}

func (a *Accessor) Delete(ctx context.Context, model interface{}, id string) error {
	return a.db.WithContext(ctx).Delete(model, "id = ?", id).Error
}

// ---------- non-blocking writes ----------

// CreateAsync fires the insert and returns immediately. Failures surface
// on Errors().
func (a *Accessor) CreateAsync(modelName string, value interface{}) {
	a.enqueue(job{op: "create", model: modelName, run: func(db *gorm.DB) error {
		return db.Create(value).Error
	}})
}

// UpdateAsync fires a partial update and returns immediately.
func (a *Accessor) UpdateAsync(modelName string, model interface{}, id string, patch map[string]interface{}) {
	a.enqueue(job{op: "update", model: modelName, id: id, run: func(db *gorm.DB) error {
		return db.Model(model).Where("id = ?", id).Updates(patch).Error
	}})
}

// SaveAsync fires a merge-write of the full record (insert or update).
func (a *Accessor) SaveAsync(modelName string, value interface{}) {
	a.enqueue(job{op: "save", model: modelName, run: func(db *gorm.DB) error {
		return db.Save(value).Error
	}})
}

func (a *Accessor) enqueue(j job) {
	select {
	case a.queue <- j:
	case <-a.done:
	}
}

func (a *Accessor) writer() {
	for {
		select {
		case j := <-a.queue:
			if err := j.run(a.db); err != nil {
				a.failed.Add(1)
				select {
				case a.errs <- WriteError{Op: j.op, Model: j.model, ID: j.id, Err: err}:
				default:
					// channel full and nobody reading: log here so the
					// failure is still visible somewhere
					log.Logger.Error().
						Str("op", j.op).
						Str("model", j.model).
						Str("id", j.id).
						Err(err).
						Msg("async write failed (error channel full)")
				}
			}
		case <-a.done:
			return
		}
	}
}

// Errors exposes the process-wide channel of failed non-blocking writes.
func (a *Accessor) Errors() <-chan WriteError {
	return a.errs
}

// Drain consumes Errors() until Close, logging each failure. Run it as a
// goroutine when no other consumer is attached.
func (a *Accessor) Drain() {
	for {
		select {
		case we := <-a.errs:
			log.Logger.Error().
				Str("op", we.Op).
				Str("model", we.Model).
				Str("id", we.ID).
				Err(we.Err).
				Msg("async write failed")
		case <-a.done:
			return
		}
	}
}

// FailedWrites reports how many non-blocking writes have failed since start.
func (a *Accessor) FailedWrites() int64 {
	return a.failed.Load()
}

func (a *Accessor) Close() {
	a.closeOnce.Do(func() { close(a.done) })
}
