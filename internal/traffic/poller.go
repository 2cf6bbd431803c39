package traffic

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"ftth-net.id/dashboard/internal/models"
	"ftth-net.id/dashboard/pkg/backend"
	"ftth-net.id/dashboard/pkg/logger"
)

const (
	DefaultRefresh = 5 * time.Minute
	fetchLimit     = 8
)

// Source is the slice of the backend the poller reads from.
type Source interface {
	ListInterfaces(ctx context.Context) ([]models.Interface, error)
	TrafficForInterface(ctx context.Context, interfaceID int) ([]models.TrafficSample, error)
	SyncTraffic(ctx context.Context) error
}

// serviceSource runs every call through the service account so background
// polls survive token expiry.
type serviceSource struct {
	acct *backend.ServiceAccount
}

func FromServiceAccount(acct *backend.ServiceAccount) Source {
	return serviceSource{acct: acct}
}

func (s serviceSource) ListInterfaces(ctx context.Context) (out []models.Interface, err error) {
	err = s.acct.Do(ctx, func(c *backend.Client) error {
		out, err = c.ListInterfaces(ctx)
		return err
	})
	return out, err
}

func (s serviceSource) TrafficForInterface(ctx context.Context, id int) (out []models.TrafficSample, err error) {
	err = s.acct.Do(ctx, func(c *backend.Client) error {
		out, err = c.TrafficForInterface(ctx, id)
		return err
	})
	return out, err
}

func (s serviceSource) SyncTraffic(ctx context.Context) error {
	return s.acct.Do(ctx, func(c *backend.Client) error {
		return c.SyncTraffic(ctx)
	})
}

// Monitored is one interface with its traffic history, oldest first.
type Monitored struct {
	models.Interface
	History []models.TrafficSample `json:"trafficHistory"`
}

type Snapshot struct {
	Items     []Monitored `json:"items"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Poller keeps the latest traffic snapshot and refreshes it on a schedule.
type Poller struct {
	source   Source
	log      *logger.Logger
	interval time.Duration

	mu   sync.RWMutex
	snap Snapshot

	sched *cron.Cron
	now   func() time.Time
}

func NewPoller(source Source, interval time.Duration, log *logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultRefresh
	}
	return &Poller{
		source:   source,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
}

// Start loads a first snapshot and schedules the periodic refresh.
func (p *Poller) Start(ctx context.Context) error {
	p.sched = cron.New()
	_, err := p.sched.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		if err := p.Refresh(ctx); err != nil {
			p.log.Warn("Traffic refresh failed", "error", err.Error())
		}
	})
	if err != nil {
		return errors.Wrap(err, "schedule traffic refresh")
	}

	go func() {
		if err := p.Refresh(ctx); err != nil {
			p.log.Warn("Initial traffic refresh failed", "error", err.Error())
		}
	}()

	p.sched.Start()
	p.log.Info("Traffic poller started", "interval", p.interval.String())
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (p *Poller) Stop() {
	if p.sched == nil {
		return
	}
	<-p.sched.Stop().Done()
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Stale reports whether the snapshot is missing or older than one refresh
// interval at now.
func (p *Poller) Stale(now time.Time) bool {
	snap := p.Snapshot()
	return snap.UpdatedAt.IsZero() || now.Sub(snap.UpdatedAt) >= p.interval
}

func (p *Poller) Refresh(ctx context.Context) error {
	return p.RefreshFrom(ctx, p.source)
}

// RefreshFrom rebuilds the snapshot using src. If the interface list cannot
// be read the previous snapshot is kept; a single interface whose history
// fails gets an empty history.
func (p *Poller) RefreshFrom(ctx context.Context, src Source) error {
	interfaces, err := src.ListInterfaces(ctx)
	if err != nil {
		return errors.Wrap(err, "list interfaces")
	}
	p.RefreshWith(ctx, src, interfaces)
	return nil
}

// RefreshWith rebuilds the snapshot from an interface list the caller has
// already fetched.
func (p *Poller) RefreshWith(ctx context.Context, src Source, interfaces []models.Interface) {
	items := make([]Monitored, len(interfaces))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, iface := range interfaces {
		i, iface := i, iface
		g.Go(func() error {
			history, err := src.TrafficForInterface(gctx, iface.ID)
			if err != nil {
				p.log.Debug("Traffic history unavailable", "interface_id", iface.ID, "error", err.Error())
				history = nil
			}
			items[i] = Monitored{Interface: iface, History: SortSamples(history)}
			return nil
		})
	}
	_ = g.Wait()

	p.mu.Lock()
	p.snap = Snapshot{Items: items, UpdatedAt: p.now()}
	p.mu.Unlock()
}

// SyncNow asks the backend to sample every router immediately, then reloads
// the snapshot through src.
func (p *Poller) SyncNow(ctx context.Context, src Source) error {
	if err := src.SyncTraffic(ctx); err != nil {
		return err
	}
	return p.RefreshFrom(ctx, src)
}

// SortSamples orders samples oldest first. Unparseable timestamps sort first.
func SortSamples(samples []models.TrafficSample) []models.TrafficSample {
	if samples == nil {
		return []models.TrafficSample{}
	}
	keyed := make([]time.Time, len(samples))
	idx := make([]int, len(samples))
	for i, s := range samples {
		keyed[i], _ = dateparse.ParseAny(s.Timestamp)
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keyed[idx[a]].Before(keyed[idx[b]])
	})

	out := make([]models.TrafficSample, len(samples))
	for i, j := range idx {
		out[i] = samples[j]
	}
	return out
}
