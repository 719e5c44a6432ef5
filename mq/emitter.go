// Package mq publishes catalog mutation events to Redis pub/sub for
// downstream consumers (search indexing, billing).
package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/tech-manthan/mernspace-catalog-service/rdx"
)

const Channel = "catalog-events"

// Event names consumed downstream. Kept stable across services.
const (
	ProductCreate  = "PRODUCT_CREATE"
	ProductUpdate  = "PRODUCT_UPDATE"
	ProductDelete  = "PRODUCT_DELETE"
	ToppingCreate  = "TOPPING_CREATE"
	ToppingUpdate  = "TOPPING_UPDATE"
	ToppingDelete  = "TOPPING_DELETE"
	CategoryCreate = "CATEGORY_CREATE"
	CategoryUpdate = "CATEGORY_UPDATE"
	CategoryDelete = "CATEGORY_DELETE"
)

type Event struct {
	Name     string `json:"event_name"`
	EntityID string `json:"entity_id"`
	TenantID string `json:"tenant_id,omitempty"`
}

type Emitter struct {
	cache *rdx.Cache
}

func NewEmitter(cache *rdx.Cache) *Emitter {
	return &Emitter{cache: cache}
}

// Emit publishes the event without blocking the request path. Publish
// failures are logged, not surfaced; event delivery is best effort.
func (e *Emitter) Emit(name, entityID, tenantID string) {
	go func() {
		data, err := json.Marshal(Event{Name: name, EntityID: entityID, TenantID: tenantID})
		if err != nil {
			log.Printf("mq: failed to marshal event %s: %v", name, err)
			return
		}
		if err := e.cache.Conn.Publish(context.Background(), Channel, data).Err(); err != nil {
			log.Printf("mq: failed to publish event %s: %v", name, err)
		}
	}()
}
