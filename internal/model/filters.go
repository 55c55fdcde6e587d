package model

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/a1s/gridview/internal/model1"
)

// DefaultStorageKey is the store key holding persisted filters.
const DefaultStorageKey = "gridview.filters"

// Store is a key/value store for persisted grid state.
type Store interface {
	// Get returns the value of a key and whether it was found.
	Get(key string) (string, bool, error)

	// Set stores a value under a key.
	Set(key, value string) error
}

// FilterConfig configures a filter manager.
type FilterConfig struct {
	PersistFilters  bool
	StorageKey      string
	Store           Store
	OnFiltersChange func([]model1.FilterState)
	Logger          *slog.Logger
}

// FilterUpdate holds the descriptor fields changed by UpdateFilter.
type FilterUpdate struct {
	Type        *model1.FilterType
	Field       *string
	Value       model1.FilterValue
	Options     []model1.FilterOption
	Placeholder *string
}

// EncodeFilters serializes a filter list.
func EncodeFilters(ff []model1.FilterState) (string, error) {
	if ff == nil {
		ff = []model1.FilterState{}
	}
	raw, err := sonic.ConfigStd.Marshal(ff)
	if err != nil {
		return "", fmt.Errorf("encode filters: %w", err)
	}
	return string(raw), nil
}

// DecodeFilters parses a persisted filter list and re-derives active state.
func DecodeFilters(s string) ([]model1.FilterState, error) {
	var ff []model1.FilterState
	if err := sonic.ConfigStd.UnmarshalFromString(s, &ff); err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}
	if ff == nil {
		return nil, fmt.Errorf("decode filters: %w", model1.ErrInvalidFilter)
	}
	return deriveAll(ff), nil
}

func deriveAll(ff []model1.FilterState) []model1.FilterState {
	out := make([]model1.FilterState, 0, len(ff))
	for _, f := range ff {
		out = append(out, f.Derive())
	}
	return out
}

// FilterManager tracks filter values, their active state and persistence.
type FilterManager struct {
	config  FilterConfig
	initial []model1.FilterState
	filters []model1.FilterState
	log     *slog.Logger
	mx      sync.RWMutex
}

// NewFilterManager returns a manager seeded from the stored filters when
// persistence is enabled and a valid payload exists, else from initial.
func NewFilterManager(initial []model1.FilterState, cfg FilterConfig) *FilterManager {
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f := FilterManager{
		config:  cfg,
		initial: deriveAll(initial),
		log:     log.With("component", "filters"),
	}
	f.filters = f.load()

	return &f
}

func (f *FilterManager) persisting() bool {
	return f.config.PersistFilters && f.config.Store != nil
}

func (f *FilterManager) load() []model1.FilterState {
	fallback := cloneAll(f.initial)
	if !f.persisting() {
		return fallback
	}

	raw, ok, err := f.config.Store.Get(f.config.StorageKey)
	if err != nil {
		f.log.Warn("unable to read stored filters", "key", f.config.StorageKey, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	ff, err := DecodeFilters(raw)
	if err != nil {
		f.log.Warn("discarding stored filters", "key", f.config.StorageKey, "error", err)
		return fallback
	}
	for i := range ff {
		if j := indexOf(f.initial, ff[i].ID); j >= 0 {
			ff[i].OnChange = f.initial[j].OnChange
		}
	}
	f.log.Debug("loaded stored filters", "key", f.config.StorageKey, "count", len(ff))

	return ff
}

func (f *FilterManager) persist(ff []model1.FilterState) {
	if !f.persisting() {
		return
	}
	raw, err := EncodeFilters(ff)
	if err == nil {
		err = f.config.Store.Set(f.config.StorageKey, raw)
	}
	if err != nil {
		f.log.Warn("unable to persist filters", "key", f.config.StorageKey, "error", err)
	}
}

func cloneAll(ff []model1.FilterState) []model1.FilterState {
	out := make([]model1.FilterState, 0, len(ff))
	for _, f := range ff {
		out = append(out, f.Clone())
	}
	return out
}

func indexOf(ff []model1.FilterState, id string) int {
	return slices.IndexFunc(ff, func(f model1.FilterState) bool {
		return f.ID == id
	})
}

// SetOnFiltersChange sets the list change callback.
func (f *FilterManager) SetOnFiltersChange(cb func([]model1.FilterState)) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.config.OnFiltersChange = cb
}

// Filters returns the current filter list.
func (f *FilterManager) Filters() []model1.FilterState {
	f.mx.RLock()
	defer f.mx.RUnlock()
	return cloneAll(f.filters)
}

// Filter returns a filter by ID.
func (f *FilterManager) Filter(id string) (model1.FilterState, bool) {
	f.mx.RLock()
	defer f.mx.RUnlock()
	if i := indexOf(f.filters, id); i >= 0 {
		return f.filters[i].Clone(), true
	}
	return model1.FilterState{}, false
}

// change is a filter whose OnChange must fire with its new value.
type change struct {
	cb    func(model1.FilterValue)
	value model1.FilterValue
}

// commit installs a new list then fires per-filter callbacks, the list
// callback and the store write, in that order.
func (f *FilterManager) commit(ff []model1.FilterState, cc []change) {
	f.mx.Lock()
	f.filters = ff
	cb := f.config.OnFiltersChange
	f.mx.Unlock()

	for _, c := range cc {
		if c.cb != nil {
			c.cb(c.value)
		}
	}
	if cb != nil {
		cb(cloneAll(ff))
	}
	f.persist(ff)
}

// SetFilterValue sets the value of a filter.
func (f *FilterManager) SetFilterValue(id string, v model1.FilterValue) {
	f.mx.RLock()
	ff := cloneAll(f.filters)
	f.mx.RUnlock()

	i := indexOf(ff, id)
	if i < 0 {
		return
	}
	ff[i].Value = v
	ff[i] = ff[i].Derive()
	f.commit(ff, []change{{cb: ff[i].OnChange, value: ff[i].Value}})
}

// ClearFilter resets a filter to its empty value.
func (f *FilterManager) ClearFilter(id string) {
	f.mx.RLock()
	ff := cloneAll(f.filters)
	f.mx.RUnlock()

	i := indexOf(ff, id)
	if i < 0 {
		return
	}
	ff[i].Value = model1.ZeroValue(ff[i].Type)
	ff[i] = ff[i].Derive()
	f.commit(ff, []change{{cb: ff[i].OnChange, value: ff[i].Value}})
}

// ClearAllFilters resets every filter in a single update.
func (f *FilterManager) ClearAllFilters() {
	f.mx.RLock()
	ff := cloneAll(f.filters)
	f.mx.RUnlock()

	cc := make([]change, 0, len(ff))
	for i := range ff {
		ff[i].Value = model1.ZeroValue(ff[i].Type)
		ff[i] = ff[i].Derive()
		cc = append(cc, change{cb: ff[i].OnChange, value: ff[i].Value})
	}
	f.commit(ff, cc)
}

// ResetFilters restores the initial filters.
func (f *FilterManager) ResetFilters() {
	ff := cloneAll(f.initial)
	cc := make([]change, 0, len(ff))
	for _, x := range ff {
		cc = append(cc, change{cb: x.OnChange, value: x.Value})
	}
	f.commit(ff, cc)
}

// AddFilter appends a filter. A missing ID is generated; a duplicate ID is
// ignored.
func (f *FilterManager) AddFilter(x model1.FilterState) string {
	if x.ID == "" {
		x.ID = uuid.NewString()
	}

	f.mx.RLock()
	ff := cloneAll(f.filters)
	f.mx.RUnlock()

	if indexOf(ff, x.ID) >= 0 {
		f.log.Debug("filter already exists", "id", x.ID)
		return x.ID
	}
	if !x.Type.IsValid() {
		x.Type = model1.FilterSearch
	}
	ff = append(ff, x.Derive())
	f.commit(ff, nil)

	return x.ID
}

// RemoveFilter removes a filter.
func (f *FilterManager) RemoveFilter(id string) {
	f.mx.RLock()
	ff := cloneAll(f.filters)
	f.mx.RUnlock()

	i := indexOf(ff, id)
	if i < 0 {
		return
	}
	f.commit(slices.Delete(ff, i, i+1), nil)
}

// UpdateFilter merges descriptor changes into a filter and re-derives it.
func (f *FilterManager) UpdateFilter(id string, u FilterUpdate) {
	f.mx.RLock()
	ff := cloneAll(f.filters)
	f.mx.RUnlock()

	i := indexOf(ff, id)
	if i < 0 {
		return
	}
	x := ff[i]
	if u.Type != nil && u.Type.IsValid() {
		x.Type = *u.Type
	}
	if u.Field != nil {
		x.Field = *u.Field
	}
	if u.Value != nil {
		x.Value = u.Value
	}
	if u.Options != nil {
		x.Options = slices.Clone(u.Options)
	}
	if u.Placeholder != nil {
		x.Placeholder = *u.Placeholder
	}
	ff[i] = x.Derive()

	var cc []change
	if u.Value != nil {
		cc = append(cc, change{cb: ff[i].OnChange, value: ff[i].Value})
	}
	f.commit(ff, cc)
}

// IsFilterActive returns true if the filter restricts rows.
func (f *FilterManager) IsFilterActive(id string) bool {
	x, ok := f.Filter(id)
	return ok && x.IsActive
}

// ActiveFilterCount returns the number of active constraints of a filter.
func (f *FilterManager) ActiveFilterCount(id string) int {
	x, _ := f.Filter(id)
	return x.ActiveCount
}

// FilterDisplayValue returns the text shown for a filter.
func (f *FilterManager) FilterDisplayValue(id string) string {
	x, ok := f.Filter(id)
	if !ok {
		return ""
	}
	return x.DisplayValue()
}

// ActiveFilters returns the active filters.
func (f *FilterManager) ActiveFilters() []model1.FilterState {
	f.mx.RLock()
	defer f.mx.RUnlock()

	out := make([]model1.FilterState, 0, len(f.filters))
	for _, x := range f.filters {
		if x.IsActive {
			out = append(out, x.Clone())
		}
	}
	return out
}

// HasActiveFilters returns true if any filter is active.
func (f *FilterManager) HasActiveFilters() bool {
	return len(f.ActiveFilters()) > 0
}

// ErrNoStore reports a persistence request without a configured store.
var ErrNoStore = errors.New("no filter store configured")

// Save writes the current filters to the store.
func (f *FilterManager) Save() error {
	if f.config.Store == nil {
		return ErrNoStore
	}
	raw, err := EncodeFilters(f.Filters())
	if err != nil {
		return err
	}
	return f.config.Store.Set(f.config.StorageKey, raw)
}
