package types

import (
	"roamsync/utility"
	"strings"
	"sync"
)

// Facility is an interned value from an open vocabulary. Two values
// obtained from the same registry compare equal iff their normalized
// text matches; well-known names are pre-registered on construction.
type Facility struct {
	text string
}

func (f *Facility) String() string {
	return f.text
}

var wellKnownFacilities = []string{
	"HOTEL",
	"RESTAURANT",
	"CAFE",
	"MALL",
	"SUPERMARKET",
	"SPORT",
	"RECREATION_AREA",
	"NATURE",
	"MUSEUM",
	"BIKE_SHARING",
	"BUS_STOP",
	"TAXI_STAND",
	"TRAM_STOP",
	"METRO_STATION",
	"TRAIN_STATION",
	"AIRPORT",
	"PARKING_LOT",
	"CARPOOL_PARKING",
	"FUEL_STATION",
	"WIFI",
}

// FacilityRegistry interns facility values by case-insensitive text.
// Created once at process start and injected where needed. The table
// grows for the lifetime of the process and is never cleared: the
// facility vocabulary is small and finite in practice, so entries are
// kept deliberately rather than evicted.
type FacilityRegistry struct {
	mutex   sync.RWMutex
	entries map[string]*Facility
}

func NewFacilityRegistry() *FacilityRegistry {
	registry := &FacilityRegistry{
		entries: make(map[string]*Facility),
	}
	for _, name := range wellKnownFacilities {
		registry.Register(name)
	}
	return registry
}

// Register returns the interned facility for the given text, creating
// it on first sight. Concurrent calls for the same text yield the
// same instance. Unknown text is accepted and normalized, not
// rejected.
func (r *FacilityRegistry) Register(text string) *Facility {
	key := utility.NormalizedText(text)
	if key == "" {
		return nil
	}

	r.mutex.RLock()
	facility, ok := r.entries[key]
	r.mutex.RUnlock()
	if ok {
		return facility
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if facility, ok = r.entries[key]; ok {
		return facility
	}
	facility = &Facility{text: strings.ToUpper(key)}
	r.entries[key] = facility
	return facility
}

// Lookup returns the interned facility without registering new text.
func (r *FacilityRegistry) Lookup(text string) (*Facility, bool) {
	key := utility.NormalizedText(text)
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	facility, ok := r.entries[key]
	return facility, ok
}

func (r *FacilityRegistry) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.entries)
}
